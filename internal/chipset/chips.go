package chipset

import (
	"github.com/nevisdale/amichip/internal/blitter"
	"github.com/nevisdale/amichip/internal/bus"
	"github.com/nevisdale/amichip/internal/chipreg"
	"github.com/nevisdale/amichip/internal/dma"
	"github.com/nevisdale/amichip/internal/irq"
	"github.com/nevisdale/amichip/internal/logger"
	"github.com/nevisdale/amichip/internal/video"
)

// UnhandledRegister is the log entry for an access to a register that is not
// emulated. Reads of an unhandled register return zero and writes are dropped.
const UnhandledRegister = "unhandled %s of register %#03x"

// Chips routes custom chip register offsets to the chip that owns them.
type Chips struct {
	DMA     *dma.Controller
	IRQ     *irq.Controller
	Blitter *blitter.Blitter
	Video   *video.Video
}

func unhandled(perm logger.Permission, access string, offset uint32) {
	logger.Logf(perm, "chipset", UnhandledRegister, access, offset)
}

// dmaconr adds the blitter status bits to the DMA enable bits.
func (c *Chips) dmaconr() uint16 {
	v := c.DMA.Flags()
	if c.Blitter.Active() {
		v |= dma.BBUSY
	}
	if c.Blitter.Zero() {
		v |= dma.BZERO
	}
	return v
}

func isVideo(offset uint32) bool {
	switch {
	case offset == bus.VPOSR, offset == bus.VHPOSR, offset == bus.COPCON:
		return true
	case offset >= bus.COP1LCH && offset <= bus.DDFSTOP:
		return true
	case offset >= bus.VideoFirst && offset <= bus.VideoLast:
		return true
	}
	return false
}

func isBlitter(offset uint32) bool {
	return blitter.IsRegister(offset)
}

// ReadRegister reads the register at offset. Reads have no side effects,
// the permission only controls the logging of unhandled registers.
func (c *Chips) ReadRegister(perm logger.Permission, offset uint32) uint16 {
	offset &= bus.CustomRegMask &^ 1
	switch {
	case offset == bus.DMACONR:
		return c.dmaconr()
	case offset == bus.INTENAR:
		return c.IRQ.Enable()
	case offset == bus.INTREQR:
		return c.IRQ.Request()
	case isBlitter(offset):
		return c.Blitter.Read16(offset)
	case isVideo(offset):
		return c.Video.Read16(offset)
	}
	unhandled(perm, "read", offset)
	return 0
}

// WriteRegister writes a word to the register at offset. It is the target of
// copper MOVE instructions as well as CPU writes.
func (c *Chips) WriteRegister(offset uint32, data uint16) {
	offset &= bus.CustomRegMask &^ 1
	switch {
	case offset == bus.DMACON:
		c.DMA.Write(data)
	case offset == bus.INTENA:
		c.IRQ.WriteEnable(data)
	case offset == bus.INTREQ:
		c.IRQ.WriteRequest(data)
	case offset == bus.VPOSR, offset == bus.VHPOSR:
		unhandled(logger.Allow, "write", offset)
	case isBlitter(offset):
		c.Blitter.Write16(offset, data)
	case isVideo(offset):
		c.Video.Write16(offset, data)
	default:
		unhandled(logger.Allow, "write", offset)
	}
}

// writeByte writes one byte. The 68000 puts a byte on both halves of the data
// bus so the command registers, which have no use for half a word, see the
// byte twice.
func (c *Chips) writeByte(offset uint32, data uint8) {
	offset &= bus.CustomRegMask
	switch offset &^ 1 {
	case bus.DMACON, bus.INTENA, bus.INTREQ, bus.COPCON, bus.COPJMP1, bus.COPJMP2:
		c.WriteRegister(offset, chipreg.Duplicate(data))
		return
	}
	switch {
	case isBlitter(offset &^ 1):
		c.Blitter.Write8(offset, data)
	case isVideo(offset&^1) && offset&^1 != bus.VPOSR && offset&^1 != bus.VHPOSR:
		c.Video.Write8(offset, data)
	default:
		unhandled(logger.Allow, "write", offset)
	}
}

// Reset resets the chips. The order matches the order they were created in.
func (c *Chips) Reset() {
	c.DMA.Reset()
	c.IRQ.Reset()
	c.Blitter.Reset()
	c.Video.Reset()
}
