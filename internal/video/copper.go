package video

import (
	"fmt"

	"github.com/nevisdale/amichip/internal/chipreg"
)

// ticks taken to fetch and decode an instruction pair
const copperFetchCycles = 6

// COPCON bits
const copperDanger = 1 << 1

// CopperStatus is the state of the copper state machine.
type CopperStatus int

const (
	CopperFetch CopperStatus = iota
	CopperWait
)

func (s CopperStatus) String() string {
	switch s {
	case CopperFetch:
		return "fetch"
	case CopperWait:
		return "wait"
	}
	return "unknown"
}

// Instruction kinds.
const (
	Move = "MOVE"
	Wait = "WAIT"
	Skip = "SKIP"
)

type copper struct {
	copcon chipreg.Word
	lc     [2]chipreg.Pointer
	active int

	pc  uint32
	ir1 uint16
	ir2 uint16

	status CopperStatus

	// latency counts down the fetch of the next instruction pair. it is
	// separate from the wait state, which has no timer of its own.
	latency int
}

// restart reloads the program counter from the active list.
func (c *copper) restart() {
	c.pc = uint32(c.lc[c.active])
	c.status = CopperFetch
	c.latency = copperFetchCycles
}

// jump selects a list and restarts from it.
func (c *copper) jump(list int) {
	c.active = list
	c.restart()
}

func (c *copper) danger() bool {
	return c.copcon&copperDanger != 0
}

// tickCopper runs one cycle of the copper. The instruction pair is fetched
// on the last cycle of the fetch latency and takes effect immediately. A WAIT
// that is not satisfied is checked again on every following cycle.
func (v *Video) tickCopper() {
	if !v.dma.CopperEnabled() {
		return
	}

	c := &v.copper
	switch c.status {
	case CopperFetch:
		c.latency--
		if c.latency > 0 {
			return
		}
		c.ir1 = v.mem.Read16NoCheck(c.pc)
		c.ir2 = v.mem.Read16NoCheck(c.pc + 2)
		c.pc += 4
		v.execute()
	case CopperWait:
		if v.compare() {
			c.fetch()
		}
	}
}

func (c *copper) fetch() {
	c.status = CopperFetch
	c.latency = copperFetchCycles
}

func (v *Video) execute() {
	c := &v.copper

	if c.ir1&1 == 0 {
		// the next fetch is set up first. a MOVE to a COPJMP strobe
		// restarts the copper
		c.fetch()
		offset := uint32(c.ir1 & 0x1fe)
		if moveAllowed(offset, c.danger()) && v.writer != nil {
			v.writer.WriteRegister(offset, c.ir2)
		}
		return
	}

	if c.ir2&1 == 0 {
		// wait
		if v.compare() {
			c.fetch()
			return
		}
		c.status = CopperWait
		return
	}

	// skip never waits
	if v.compare() {
		c.pc += 4
	}
	c.fetch()
}

// moveAllowed returns false for the registers a copper MOVE may not touch.
// Offsets below 0x40 are never written, the blitter registers from 0x40 to
// 0x7e only when COPCON danger is set.
func moveAllowed(offset uint32, danger bool) bool {
	switch {
	case offset < 0x40:
		return false
	case offset < 0x80:
		return danger
	}
	return true
}

// compare checks the beam position and blitter against the current WAIT or
// SKIP instruction. Only the position bits selected by the enable masks in
// the second word are compared.
func (v *Video) compare() bool {
	c := &v.copper

	if c.ir2&0x8000 == 0 && v.blitter != nil && !v.blitter.Done() {
		return false
	}

	ve := int(c.ir2>>8) & 0x7f
	he := int(c.ir2) & 0xfe
	vp := int(c.ir1>>8) & 0xff
	hp := int(c.ir1) & 0xfe

	beam := (v.vpos&0xff&ve)<<8 | v.hpos&he
	target := (vp&ve)<<8 | hp&he
	return beam >= target
}

// Disassemble describes an instruction pair.
func Disassemble(ir1, ir2 uint16) string {
	if ir1&1 == 0 {
		return fmt.Sprintf("%s $%03x,$%04x", Move, ir1&0x1fe, ir2)
	}
	kind := Wait
	if ir2&1 == 1 {
		kind = Skip
	}
	s := fmt.Sprintf("%s v=$%02x h=$%02x ve=$%02x he=$%02x", kind, ir1>>8, ir1&0xfe, ir2>>8&0x7f, ir2&0xfe)
	if ir2&0x8000 != 0 {
		s += " bfd"
	}
	return s
}
