// Package dma holds the DMA control register. The custom chips ask it whether
// their channel is enabled before doing any work.
package dma

import "github.com/nevisdale/amichip/internal/chipreg"

// DMACON bits.
const (
	AUD0EN  = 1 << 0
	AUD1EN  = 1 << 1
	AUD2EN  = 1 << 2
	AUD3EN  = 1 << 3
	DSKEN   = 1 << 4
	SPREN   = 1 << 5
	BLTEN   = 1 << 6
	COPEN   = 1 << 7
	BPLEN   = 1 << 8
	DMAEN   = 1 << 9
	BLTPRI  = 1 << 10
	BZERO   = 1 << 13
	BBUSY   = 1 << 14
	SETCLR  = 1 << 15
	statusM = BZERO | BBUSY
)

// Controller is the DMA control register. It is passive: the channels consult
// it, only the DMACON write path changes it.
type Controller struct {
	flags uint16
}

func NewController() *Controller {
	return &Controller{}
}

// Write applies a DMACON write. Bit 15 selects between setting and clearing
// the other bits. BZERO and BBUSY are status bits and cannot be written.
func (c *Controller) Write(data uint16) {
	c.flags = chipreg.SetClear(c.flags, data&^statusM)
}

// Flags returns the enable bits. The blitter status bits are added by the
// DMACONR read path, which knows about the blitter.
func (c *Controller) Flags() uint16 {
	return c.flags
}

func (c *Controller) Reset() {
	c.flags = 0
}

func (c *Controller) enabled(bit uint16) bool {
	return c.flags&(DMAEN|bit) == DMAEN|bit
}

// AudioEnabled returns true if the audio channel (0 to 3) is enabled.
func (c *Controller) AudioEnabled(channel int) bool {
	return c.enabled(AUD0EN << (channel & 3))
}

func (c *Controller) DiskEnabled() bool {
	return c.enabled(DSKEN)
}

func (c *Controller) SpriteEnabled() bool {
	return c.enabled(SPREN)
}

func (c *Controller) BlitterEnabled() bool {
	return c.enabled(BLTEN)
}

func (c *Controller) CopperEnabled() bool {
	return c.enabled(COPEN)
}

func (c *Controller) BitplaneEnabled() bool {
	return c.enabled(BPLEN)
}

// String lists the enabled channels.
func (c *Controller) String() string {
	s := make([]byte, 0, 40)
	for _, ch := range []struct {
		bit  uint16
		name string
	}{
		{DMAEN, "DMA"}, {BPLEN, "BPL"}, {COPEN, "COP"}, {BLTEN, "BLT"},
		{SPREN, "SPR"}, {DSKEN, "DSK"}, {AUD3EN, "AUD3"}, {AUD2EN, "AUD2"},
		{AUD1EN, "AUD1"}, {AUD0EN, "AUD0"},
	} {
		if c.flags&ch.bit == 0 {
			continue
		}
		if len(s) > 0 {
			s = append(s, ' ')
		}
		s = append(s, ch.name...)
	}
	if len(s) == 0 {
		return "-"
	}
	return string(s)
}
