// Package chipreg holds the accessors shared by the custom chip register
// files.
//
// The custom chips sit on the 16-bit half of the data bus. A byte access
// reaches one half of a register: even offsets are the high byte, odd offsets
// the low byte. Pointers are pairs of registers, the high word first.
package chipreg

// Word is a 16-bit register.
type Word uint16

// Byte returns the half of the register selected by bit 0 of offset.
func (w Word) Byte(offset uint32) uint8 {
	if offset&1 == 0 {
		return uint8(w >> 8)
	}
	return uint8(w)
}

// SetByte replaces the half of the register selected by bit 0 of offset.
func (w *Word) SetByte(offset uint32, data uint8) {
	if offset&1 == 0 {
		*w = *w&0x00ff | Word(data)<<8
		return
	}
	*w = *w&0xff00 | Word(data)
}

// Pointer is a 32-bit register pair. Bit 1 of the offset selects the word.
type Pointer uint32

func (p Pointer) Word(offset uint32) uint16 {
	if offset&2 == 0 {
		return uint16(p >> 16)
	}
	return uint16(p)
}

func (p *Pointer) SetWord(offset uint32, data uint16) {
	if offset&2 == 0 {
		*p = *p&0x0000ffff | Pointer(data)<<16
		return
	}
	*p = *p&0xffff0000 | Pointer(data)
}

func (p Pointer) Byte(offset uint32) uint8 {
	w := Word(p.Word(offset))
	return w.Byte(offset)
}

func (p *Pointer) SetByte(offset uint32, data uint8) {
	w := Word(p.Word(offset))
	w.SetByte(offset, data)
	p.SetWord(offset, uint16(w))
}

// SetClear applies the set/clear rule of the command registers. When bit 15
// of data is set the other bits are ORed into reg, otherwise they are
// cleared from it.
func SetClear(reg uint16, data uint16) uint16 {
	if data&0x8000 != 0 {
		return reg | data&0x7fff
	}
	return reg &^ (data & 0x7fff)
}

// Duplicate is the word the 68000 puts on the bus for a byte write. The byte
// appears on both halves.
func Duplicate(data uint8) uint16 {
	return uint16(data)<<8 | uint16(data)
}
