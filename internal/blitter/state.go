package blitter

import (
	"fmt"
	"strings"
)

// State is a copy of the blitter registers and job. It is a value and can be
// handed to another goroutine.
type State struct {
	Con0     uint16
	Con1     uint16
	AFWM     uint16
	ALWM     uint16
	Size     uint16
	Pointers [4]uint32
	Modulos  [4]uint16
	Data     [3]uint16

	Active      bool
	Done        bool
	Width       int
	RowsLeft    int
	WordsLeft   int
	Descending  bool
	TotalResult uint16
}

func (b *Blitter) State() State {
	s := State{
		Con0:        uint16(b.con0),
		Con1:        uint16(b.con1),
		AFWM:        uint16(b.afwm),
		ALWM:        uint16(b.alwm),
		Size:        uint16(b.size),
		Active:      b.job.active,
		Done:        b.job.done,
		Width:       b.job.width,
		RowsLeft:    b.job.rows,
		WordsLeft:   b.job.col,
		Descending:  b.job.descending,
		TotalResult: b.job.totalResult,
	}
	for i := range b.pt {
		s.Pointers[i] = uint32(b.pt[i])
		s.Modulos[i] = uint16(b.mod[i])
	}
	for i := range b.dat {
		s.Data[i] = uint16(b.dat[i])
	}
	if b.job.active {
		s.Pointers = b.job.ptr
	}
	return s
}

func (s State) String() string {
	var b strings.Builder
	status := "idle"
	switch {
	case s.Active:
		status = fmt.Sprintf("active, width %d, %d rows %d words left", s.Width, s.RowsLeft, s.WordsLeft)
	case !s.Done:
		status = "stalled"
	}
	fmt.Fprintf(&b, "BLITTER %s\n", status)
	fmt.Fprintf(&b, "CON0=%04x CON1=%04x AFWM=%04x ALWM=%04x SIZE=%04x\n", s.Con0, s.Con1, s.AFWM, s.ALWM, s.Size)
	for i, name := range []string{"C", "B", "A", "D"} {
		fmt.Fprintf(&b, "%sPT=%06x %sMOD=%04x", name, s.Pointers[i], name, s.Modulos[i])
		if i < len(s.Data) {
			fmt.Fprintf(&b, " %sDAT=%04x", name, s.Data[i])
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "ZERO=%v", s.TotalResult == 0)
	return b.String()
}
