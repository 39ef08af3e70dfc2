package video

import (
	"fmt"
	"strings"

	"github.com/nevisdale/amichip/internal/bus"
)

// CopperState is a copy of the copper registers.
type CopperState struct {
	PC      uint32
	List1   uint32
	List2   uint32
	Active  int
	IR1     uint16
	IR2     uint16
	Danger  bool
	Status  CopperStatus
	Latency int
}

// State is a copy of the video registers and beam position. It is a value
// and can be handed to another goroutine.
type State struct {
	VPos  int
	HPos  int
	Frame int

	BPLCON    [4]uint16
	Bitplanes int
	Pointers  [NumBitplanes]uint32
	Modulos   [2]int16
	Colors    [NumColors]uint16

	DIWSTRT uint16
	DIWSTOP uint16
	DDFSTRT uint16
	DDFSTOP uint16

	Copper CopperState
}

func (v *Video) State() State {
	s := State{
		VPos:      v.vpos,
		HPos:      v.hpos,
		Frame:     v.frame,
		Bitplanes: v.Bitplanes(),
		Modulos:   [2]int16{v.Modulo(false), v.Modulo(true)},
		DIWSTRT:   uint16(v.diwstrt),
		DIWSTOP:   uint16(v.diwstop),
		DDFSTRT:   uint16(v.ddfstrt),
		DDFSTOP:   uint16(v.ddfstop),
		Copper: CopperState{
			PC:      v.copper.pc,
			List1:   uint32(v.copper.lc[0]),
			List2:   uint32(v.copper.lc[1]),
			Active:  v.copper.active,
			IR1:     v.copper.ir1,
			IR2:     v.copper.ir2,
			Danger:  v.copper.danger(),
			Status:  v.copper.status,
			Latency: v.copper.latency,
		},
	}
	for i := range s.BPLCON {
		s.BPLCON[i] = v.Read16(uint32(bus.BPLCON0 + 2*i))
	}
	for i := range s.Pointers {
		s.Pointers[i] = v.BitplanePointer(i)
	}
	for i := range s.Colors {
		s.Colors[i] = v.Color(i)
	}
	return s
}

func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "BEAM v=%d h=%d frame=%d\n", s.VPos, s.HPos, s.Frame)
	fmt.Fprintf(&b, "COPPER %s pc=%06x list=%d cop1lc=%06x cop2lc=%06x danger=%v\n",
		s.Copper.Status, s.Copper.PC, s.Copper.Active+1, s.Copper.List1, s.Copper.List2, s.Copper.Danger)
	fmt.Fprintf(&b, "  %s\n", Disassemble(s.Copper.IR1, s.Copper.IR2))
	fmt.Fprintf(&b, "BPLCON0=%04x BPLCON1=%04x BPLCON2=%04x BPLCON3=%04x planes=%d\n",
		s.BPLCON[0], s.BPLCON[1], s.BPLCON[2], s.BPLCON[3], s.Bitplanes)
	fmt.Fprintf(&b, "DIW=%04x-%04x DDF=%04x-%04x MOD=%d/%d\n", s.DIWSTRT, s.DIWSTOP, s.DDFSTRT, s.DDFSTOP, s.Modulos[0], s.Modulos[1])
	for i, p := range s.Pointers {
		fmt.Fprintf(&b, "BPL%dPT=%06x ", i+1, p)
		if i%3 == 2 {
			b.WriteByte('\n')
		}
	}
	for i, c := range s.Colors {
		fmt.Fprintf(&b, "%03x", c)
		if i%8 == 7 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
