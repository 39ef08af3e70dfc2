package amiga

import (
	"fmt"
	"strings"

	"github.com/nevisdale/amichip/internal/blitter"
	"github.com/nevisdale/amichip/internal/video"
)

// State is a copy of the machine state for display. Take it with Inspect.
type State struct {
	Ticks  uint64
	Paused bool
	Halt   string

	DMACON    uint16
	DMA       string
	Interrupt string
	CIAA      string
	CIAB      string

	Blitter blitter.State
	Video   video.State
}

func (m *Machine) State() State {
	return State{
		Ticks:     m.ticks,
		Paused:    m.Paused(),
		Halt:      m.halt,
		DMACON:    m.Chips.DMA.Flags(),
		DMA:       m.Chips.DMA.String(),
		Interrupt: m.Chips.IRQ.String(),
		CIAA:      m.CIAA.String(),
		CIAB:      m.CIAB.String(),
		Blitter:   m.Chips.Blitter.State(),
		Video:     m.Chips.Video.State(),
	}
}

func (s State) String() string {
	var b strings.Builder
	status := "running"
	if s.Paused {
		status = "paused"
	}
	fmt.Fprintf(&b, "%s, %d cycles\n", status, s.Ticks)
	if s.Halt != "" {
		fmt.Fprintf(&b, "%s\n", s.Halt)
	}
	fmt.Fprintf(&b, "DMACON=%04x %s\n", s.DMACON, s.DMA)
	fmt.Fprintf(&b, "%s\n", s.Interrupt)
	fmt.Fprintf(&b, "%s\n%s\n", s.CIAA, s.CIAB)
	fmt.Fprintf(&b, "%s\n", s.Blitter)
	b.WriteString(s.Video.String())
	return b.String()
}
