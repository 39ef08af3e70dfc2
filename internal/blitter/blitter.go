package blitter

import (
	"github.com/nevisdale/amichip/internal/bus"
	"github.com/nevisdale/amichip/internal/chipreg"
)

// Memory is the DMA view of chip RAM.
type Memory interface {
	Read16NoCheck(addr uint32) uint16
	Write16NoCheck(addr uint32, data uint16)
}

// DMA gates the blitter channel.
type DMA interface {
	BlitterEnabled() bool
}

// Interrupts receives the BLIT interrupt at the end of a job.
type Interrupts interface {
	Raise(bits uint16)
}

// the channels in register order. the pointer, modulo and data registers are
// all laid out C, B, A, D.
const (
	chanC = iota
	chanB
	chanA
	chanD
)

// BLTCON0 bits
const (
	useD = 1 << 8
	useC = 1 << 9
	useB = 1 << 10
	useA = 1 << 11
)

// BLTCON1 bits
const (
	lineMode   = 1 << 0
	descMode   = 1 << 1
	fillCarryI = 1 << 2
	fillIncl   = 1 << 3
	fillExcl   = 1 << 4
)

// Blitter is the area mode blitter. A job is started by a word write to
// BLTSIZE and advanced one word per Tick while blitter DMA is enabled.
type Blitter struct {
	mem Memory
	dma DMA
	irq Interrupts

	con0 chipreg.Word
	con1 chipreg.Word
	afwm chipreg.Word
	alwm chipreg.Word
	size chipreg.Word
	pt   [4]chipreg.Pointer
	mod  [4]chipreg.Word
	dat  [3]chipreg.Word

	job job
}

// job is valid while active is true.
type job struct {
	active bool
	done   bool

	width int
	rows  int
	col   int

	descending bool
	ptr        [4]uint32

	shiftA uint
	shiftB uint
	carryA uint16
	carryB uint16

	fillCarry   bool
	totalResult uint16
}

// NewBlitter creates a blitter. The interrupt controller may be nil.
func NewBlitter(mem Memory, dma DMA, interrupts Interrupts) *Blitter {
	b := &Blitter{
		mem: mem,
		dma: dma,
		irq: interrupts,
	}
	b.Reset()
	return b
}

// Reset clears the registers and abandons any job.
func (b *Blitter) Reset() {
	*b = Blitter{mem: b.mem, dma: b.dma, irq: b.irq}
	b.job.done = true
}

// Active returns true while a job is running.
func (b *Blitter) Active() bool {
	return b.job.active
}

// Done returns true when no job is running. Nothing has run after a reset so
// Done is true.
func (b *Blitter) Done() bool {
	return b.job.done
}

// Zero returns true if every D word of the last job was zero.
func (b *Blitter) Zero() bool {
	return b.job.totalResult == 0
}

// start arms a new job from the register file. A running job is abandoned.
func (b *Blitter) start() {
	width := int(b.size & 0x3f)
	if width == 0 {
		width = 64
	}
	height := int(b.size>>6) & 0x3ff
	if height == 0 {
		height = 1024
	}

	b.job = job{
		active:     true,
		width:      width,
		rows:       height,
		col:        width,
		descending: b.con1&descMode != 0,
		shiftA:     uint(b.con0 >> 12),
		shiftB:     uint(b.con1 >> 12),
		fillCarry:  b.con1&fillCarryI != 0,
	}
	for i := range b.pt {
		b.job.ptr[i] = uint32(b.pt[i])
	}
}

// Read8 reads the byte at a custom chip register offset.
func (b *Blitter) Read8(offset uint32) uint8 {
	return chipreg.Word(b.Read16(offset)).Byte(offset)
}

// Read16 reads a register. Reads have no side effects.
func (b *Blitter) Read16(offset uint32) uint16 {
	offset &= bus.CustomRegMask &^ 1
	switch {
	case offset == bus.BLTCON0:
		return uint16(b.con0)
	case offset == bus.BLTCON1:
		return uint16(b.con1)
	case offset == bus.BLTAFWM:
		return uint16(b.afwm)
	case offset == bus.BLTALWM:
		return uint16(b.alwm)
	case offset >= bus.BLTCPTH && offset <= bus.BLTDPTL:
		return b.pt[(offset-bus.BLTCPTH)/4].Word(offset)
	case offset == bus.BLTSIZE:
		return uint16(b.size)
	case offset == bus.BLTCON0L:
		return uint16(b.con0 & 0xff)
	case offset >= bus.BLTCMOD && offset <= bus.BLTDMOD:
		return uint16(b.mod[(offset-bus.BLTCMOD)/2])
	case offset >= bus.BLTCDAT && offset <= bus.BLTADAT:
		return uint16(b.dat[(offset-bus.BLTCDAT)/2])
	}
	return 0
}

// Write8 writes one half of a register. A byte write to BLTSIZE does not
// start a job.
func (b *Blitter) Write8(offset uint32, data uint8) {
	offset &= bus.CustomRegMask
	if r := b.word(offset); r != nil {
		r.SetByte(offset, data)
		return
	}
	if offset&^1 >= bus.BLTCPTH && offset&^1 <= bus.BLTDPTL {
		b.pt[(offset&^1-bus.BLTCPTH)/4].SetByte(offset, data)
		return
	}
	if offset == bus.BLTCON0L+1 {
		b.con0.SetByte(offset, data)
	}
}

// Write16 writes a register. A write to BLTSIZE starts a job, even if one is
// already running.
func (b *Blitter) Write16(offset uint32, data uint16) {
	offset &= bus.CustomRegMask &^ 1
	switch {
	case offset == bus.BLTSIZE:
		b.size = chipreg.Word(data)
		b.start()
	case offset == bus.BLTCON0L:
		b.con0.SetByte(offset+1, uint8(data))
	case offset >= bus.BLTCPTH && offset <= bus.BLTDPTL:
		b.pt[(offset-bus.BLTCPTH)/4].SetWord(offset, data)
	default:
		if r := b.word(offset); r != nil {
			*r = chipreg.Word(data)
		}
	}
}

// IsRegister reports if offset is a blitter register. The gaps in the
// blitter's part of the register map ($05C, $05E and $068 to $06E) are not.
func IsRegister(offset uint32) bool {
	offset &= bus.CustomRegMask &^ 1
	switch {
	case offset >= bus.BLTCON0 && offset <= bus.BLTCON0L:
		return true
	case offset >= bus.BLTCMOD && offset <= bus.BLTDMOD:
		return true
	case offset >= bus.BLTCDAT && offset <= bus.BLTADAT:
		return true
	}
	return false
}

// word returns the 16 bit register at offset or nil.
func (b *Blitter) word(offset uint32) *chipreg.Word {
	offset &^= 1
	switch {
	case offset == bus.BLTCON0:
		return &b.con0
	case offset == bus.BLTCON1:
		return &b.con1
	case offset == bus.BLTAFWM:
		return &b.afwm
	case offset == bus.BLTALWM:
		return &b.alwm
	case offset == bus.BLTSIZE:
		return &b.size
	case offset >= bus.BLTCMOD && offset <= bus.BLTDMOD:
		return &b.mod[(offset-bus.BLTCMOD)/2]
	case offset >= bus.BLTCDAT && offset <= bus.BLTADAT:
		return &b.dat[(offset-bus.BLTCDAT)/2]
	}
	return nil
}
