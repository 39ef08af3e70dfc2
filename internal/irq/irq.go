// Package irq holds the interrupt enable and request registers of the custom
// chips and computes the interrupt priority level presented to the CPU.
package irq

import (
	"fmt"

	"github.com/nevisdale/amichip/internal/chipreg"
)

// INTENA/INTREQ bits.
const (
	TBE    = 1 << 0
	DSKBLK = 1 << 1
	SOFT   = 1 << 2
	PORTS  = 1 << 3
	COPER  = 1 << 4
	VERTB  = 1 << 5
	BLIT   = 1 << 6
	AUD0   = 1 << 7
	AUD1   = 1 << 8
	AUD2   = 1 << 9
	AUD3   = 1 << 10
	RBF    = 1 << 11
	DSKSYN = 1 << 12
	EXTER  = 1 << 13
	INTEN  = 1 << 14
)

// levels maps interrupt bits 0 to 13 onto the 68000 priority level, highest
// level first.
var levels = []struct {
	level int
	mask  uint16
}{
	{6, EXTER},
	{5, RBF | DSKSYN},
	{4, AUD0 | AUD1 | AUD2 | AUD3},
	{3, COPER | VERTB | BLIT},
	{2, PORTS},
	{1, TBE | DSKBLK | SOFT},
}

// Controller holds INTENA and INTREQ.
type Controller struct {
	enable  uint16
	request uint16
}

func NewController() *Controller {
	return &Controller{}
}

// WriteEnable applies an INTENA write.
func (c *Controller) WriteEnable(data uint16) {
	c.enable = chipreg.SetClear(c.enable, data)
}

// WriteRequest applies an INTREQ write.
func (c *Controller) WriteRequest(data uint16) {
	c.request = chipreg.SetClear(c.request, data)
}

func (c *Controller) Enable() uint16 {
	return c.enable
}

func (c *Controller) Request() uint16 {
	return c.request
}

// Raise sets request bits. Used by the chips that generate interrupts.
func (c *Controller) Raise(bits uint16) {
	c.request |= bits & 0x3fff
}

// Level returns the interrupt priority level, 0 meaning no interrupt. An
// interrupt is pending when it is both requested and enabled and the master
// enable is set.
func (c *Controller) Level() int {
	if c.enable&INTEN == 0 {
		return 0
	}
	pending := c.enable & c.request
	for _, l := range levels {
		if pending&l.mask != 0 {
			return l.level
		}
	}
	return 0
}

func (c *Controller) Reset() {
	c.enable = 0
	c.request = 0
}

func (c *Controller) String() string {
	return fmt.Sprintf("INTENA=%04x INTREQ=%04x IPL=%d", c.enable, c.request, c.Level())
}
