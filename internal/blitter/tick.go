package blitter

import (
	"github.com/nevisdale/amichip/internal/chipreg"
	"github.com/nevisdale/amichip/internal/irq"
)

// Tick advances the job by one word. Nothing happens unless a job is active
// and blitter DMA is enabled. Line mode jobs never advance.
func (b *Blitter) Tick() {
	if !b.job.active || !b.dma.BlitterEnabled() {
		return
	}
	if b.con1&lineMode != 0 {
		return
	}

	j := &b.job
	first := j.col == j.width
	last := j.col == 1

	use := uint16(b.con0)
	if use&useA != 0 {
		b.dat[chanA] = chipreg.Word(b.fetch(chanA))
	}
	if use&useB != 0 {
		b.dat[chanB] = chipreg.Word(b.fetch(chanB))
	}
	if use&useC != 0 {
		b.dat[chanC] = chipreg.Word(b.fetch(chanC))
	}

	a := uint16(b.dat[chanA])
	if first {
		a &= uint16(b.afwm)
	}
	if last {
		a &= uint16(b.alwm)
	}
	a = j.shift(a, j.shiftA, &j.carryA)
	bb := j.shift(uint16(b.dat[chanB]), j.shiftB, &j.carryB)
	c := uint16(b.dat[chanC])

	d := minterm(uint8(b.con0), a, bb, c)
	if b.con1&(fillIncl|fillExcl) != 0 {
		d = j.fill(d, b.con1&fillIncl != 0)
	}
	j.totalResult |= d

	if use&useD != 0 {
		b.mem.Write16NoCheck(j.ptr[chanD], d)
		j.advance(chanD)
	}

	j.col--
	if j.col > 0 {
		return
	}

	// end of row
	for ch, bit := range [4]uint16{useC, useB, useA, useD} {
		if use&bit != 0 {
			j.modulo(ch, b.mod[ch])
		}
	}
	j.fillCarry = b.con1&fillCarryI != 0
	j.rows--
	if j.rows > 0 {
		j.col = j.width
		return
	}

	b.finish()
}

func (b *Blitter) fetch(ch int) uint16 {
	v := b.mem.Read16NoCheck(b.job.ptr[ch])
	b.job.advance(ch)
	return v
}

// finish ends the job. The working pointers are written back to the pointer
// registers.
func (b *Blitter) finish() {
	for i := range b.pt {
		b.pt[i] = chipreg.Pointer(b.job.ptr[i])
	}
	b.job.active = false
	b.job.done = true
	if b.irq != nil {
		b.irq.Raise(irq.BLIT)
	}
}

func (j *job) advance(ch int) {
	if j.descending {
		j.ptr[ch] -= 2
	} else {
		j.ptr[ch] += 2
	}
}

// modulo is a signed byte count added (subtracted in descending mode) at the
// end of every row.
func (j *job) modulo(ch int, mod chipreg.Word) {
	m := uint32(int32(int16(mod)))
	if j.descending {
		j.ptr[ch] -= m
	} else {
		j.ptr[ch] += m
	}
}

// shift shifts a source word right (left in descending mode). The bits shifted
// out are kept in carry and shifted into the next word.
func (j *job) shift(v uint16, n uint, carry *uint16) uint16 {
	if n == 0 {
		return v
	}
	var out uint16
	if j.descending {
		out = v<<n | *carry
		*carry = (v & ^(uint16(0xffff) >> n)) >> (16 - n)
	} else {
		out = v>>n | *carry
		*carry = (v & (1<<n - 1)) << (16 - n)
	}
	return out
}

// fill runs the area fill over a word, lowest bit first. The carry flips at
// every set bit. Exclusive fill drops the closing edge.
func (j *job) fill(d uint16, inclusive bool) uint16 {
	var out uint16
	for i := 0; i < 16; i++ {
		bit := d&(1<<i) != 0
		var o bool
		if inclusive {
			o = j.fillCarry || bit
		} else {
			o = j.fillCarry != bit
		}
		if o {
			out |= 1 << i
		}
		if bit {
			j.fillCarry = !j.fillCarry
		}
	}
	return out
}

// minterm combines the three sources with the logic function in the low byte
// of BLTCON0. Bit i of the function selects the term where A, B and C are
// bits 2, 1 and 0 of i, a clear bit selecting the complement.
func minterm(lf uint8, a, b, c uint16) uint16 {
	var d uint16
	for i := 0; i < 8; i++ {
		if lf&(1<<i) == 0 {
			continue
		}
		term := uint16(0xffff)
		if i&4 != 0 {
			term &= a
		} else {
			term &^= a
		}
		if i&2 != 0 {
			term &= b
		} else {
			term &^= b
		}
		if i&1 != 0 {
			term &= c
		} else {
			term &^= c
		}
		d |= term
	}
	return d
}
