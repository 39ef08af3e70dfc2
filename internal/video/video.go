package video

import (
	"github.com/nevisdale/amichip/internal/bus"
	"github.com/nevisdale/amichip/internal/chipreg"
	"github.com/nevisdale/amichip/internal/irq"
)

// Memory is the DMA view of chip RAM.
type Memory interface {
	Read16NoCheck(addr uint32) uint16
}

// DMA gates the copper channel.
type DMA interface {
	CopperEnabled() bool
}

// BlitterStatus is consulted by copper WAIT and SKIP instructions.
type BlitterStatus interface {
	Done() bool
}

// RegisterWriter is the custom chip register file as seen by copper MOVE
// instructions.
type RegisterWriter interface {
	WriteRegister(offset uint32, data uint16)
}

// Interrupts receives the VERTB interrupt.
type Interrupts interface {
	Raise(bits uint16)
}

const (
	// ColorClocks is the number of colour clocks in a line. A colour clock is
	// two CPU cycles.
	ColorClocks = 227

	NumColors    = 32
	NumBitplanes = 6
	NumSprites   = 8

	numRegs = (bus.VideoLast - bus.VideoFirst + 1) / 2
)

// Video holds the display registers and the copper. The beam position is
// advanced by Tick. A vertical sync happens every cyclesPerFrame ticks.
type Video struct {
	mem     Memory
	dma     DMA
	blitter BlitterStatus
	writer  RegisterWriter
	irq     Interrupts

	// bitplane, sprite, colour and timing registers from BPL1PTH to DIWHIGH
	regs [numRegs]chipreg.Word

	diwstrt chipreg.Word
	diwstop chipreg.Word
	ddfstrt chipreg.Word
	ddfstop chipreg.Word

	copper copper

	cyclesPerFrame int
	vsync          int

	half  bool
	hpos  int
	vpos  int
	frame int
}

// NewVideo creates the video chip. The writer and the interrupt controller may
// be nil, in which case copper moves and VERTB are dropped.
func NewVideo(mem Memory, dma DMA, blitter BlitterStatus, writer RegisterWriter, interrupts Interrupts, cyclesPerFrame int) *Video {
	v := &Video{
		mem:            mem,
		dma:            dma,
		blitter:        blitter,
		writer:         writer,
		irq:            interrupts,
		cyclesPerFrame: cyclesPerFrame,
	}
	v.Reset()
	return v
}

// SetRegisterWriter sets the target of copper MOVE instructions.
func (v *Video) SetRegisterWriter(w RegisterWriter) {
	v.writer = w
}

func (v *Video) Reset() {
	v.regs = [numRegs]chipreg.Word{}
	v.diwstrt, v.diwstop, v.ddfstrt, v.ddfstop = 0, 0, 0, 0
	v.copper = copper{}
	v.vsync = v.cyclesPerFrame
	v.half = false
	v.hpos = 0
	v.vpos = 0
	v.frame = 0
	v.copper.restart()
}

// Tick advances the beam by one CPU cycle and then runs the copper.
func (v *Video) Tick() {
	v.half = !v.half
	if !v.half {
		v.hpos++
		if v.hpos >= ColorClocks {
			v.hpos = 0
			v.vpos++
		}
	}

	v.vsync--
	if v.vsync <= 0 {
		v.verticalSync()
	}

	v.tickCopper()
}

func (v *Video) verticalSync() {
	v.vsync = v.cyclesPerFrame
	v.half = false
	v.hpos = 0
	v.vpos = 0
	v.frame++
	v.copper.restart()
	if v.irq != nil {
		v.irq.Raise(irq.VERTB)
	}
}

// Beam returns the vertical and horizontal beam position. The horizontal
// position is in colour clocks.
func (v *Video) Beam() (vpos int, hpos int) {
	return v.vpos, v.hpos
}

// Frame returns the number of vertical syncs since the last reset.
func (v *Video) Frame() int {
	return v.frame
}

// CyclesToVSync returns the number of ticks until the next vertical sync.
func (v *Video) CyclesToVSync() int {
	return v.vsync
}

// Color returns colour register n as a 12 bit RGB value.
func (v *Video) Color(n int) uint16 {
	return uint16(v.regs[(bus.COLOR00-bus.VideoFirst)/2+n%NumColors]) & 0x0fff
}

// BitplanePointer returns the pointer of bitplane n.
func (v *Video) BitplanePointer(n int) uint32 {
	i := (bus.BPL1PTH-bus.VideoFirst)/2 + 2*(n%NumBitplanes)
	return uint32(v.regs[i])<<16 | uint32(v.regs[i+1])
}

// Bitplanes returns the number of bitplanes selected by BPLCON0. BPU values
// of 7 select the six bitplanes there are.
func (v *Video) Bitplanes() int {
	return min(int(v.regs[(bus.BPLCON0-bus.VideoFirst)/2]>>12)&7, NumBitplanes)
}

// Modulo returns BPL1MOD (odd planes) or BPL2MOD (even planes).
func (v *Video) Modulo(even bool) int16 {
	if even {
		return int16(v.regs[(bus.BPL2MOD-bus.VideoFirst)/2])
	}
	return int16(v.regs[(bus.BPL1MOD-bus.VideoFirst)/2])
}

func (v *Video) register(offset uint32) *chipreg.Word {
	switch {
	case offset >= bus.VideoFirst && offset <= bus.VideoLast:
		return &v.regs[(offset-bus.VideoFirst)/2]
	case offset&^1 == bus.DIWSTRT:
		return &v.diwstrt
	case offset&^1 == bus.DIWSTOP:
		return &v.diwstop
	case offset&^1 == bus.DDFSTRT:
		return &v.ddfstrt
	case offset&^1 == bus.DDFSTOP:
		return &v.ddfstop
	}
	return nil
}

func (v *Video) beamRegister(offset uint32) uint16 {
	switch offset &^ 1 {
	case bus.VPOSR:
		// long frame bit and V8
		return 0x8000 | uint16(v.vpos>>8)&1
	case bus.VHPOSR:
		return uint16(v.vpos&0xff)<<8 | uint16(v.hpos&0xff)
	}
	return 0
}

// Read16 reads a register. Reads have no side effects.
func (v *Video) Read16(offset uint32) uint16 {
	offset &= bus.CustomRegMask &^ 1
	switch offset {
	case bus.VPOSR, bus.VHPOSR:
		return v.beamRegister(offset)
	case bus.COPCON:
		return uint16(v.copper.copcon)
	case bus.COP1LCH, bus.COP1LCL, bus.COP2LCH, bus.COP2LCL:
		return v.copper.lc[(offset-bus.COP1LCH)/4].Word(offset)
	}
	if r := v.register(offset); r != nil {
		return uint16(*r)
	}
	return 0
}

func (v *Video) Read8(offset uint32) uint8 {
	return chipreg.Word(v.Read16(offset)).Byte(offset)
}

// Write16 writes a register. The copper control registers act on the copper:
// COPJMP1 and COPJMP2 restart it from the first or second list.
func (v *Video) Write16(offset uint32, data uint16) {
	offset &= bus.CustomRegMask &^ 1
	switch offset {
	case bus.VPOSR, bus.VHPOSR:
		return
	case bus.COPCON:
		v.copper.copcon = chipreg.Word(data)
		return
	case bus.COP1LCH, bus.COP1LCL, bus.COP2LCH, bus.COP2LCL:
		v.copper.lc[(offset-bus.COP1LCH)/4].SetWord(offset, data)
		return
	case bus.COPJMP1:
		v.copper.jump(0)
		return
	case bus.COPJMP2:
		v.copper.jump(1)
		return
	case bus.COPINS:
		return
	}
	if r := v.register(offset); r != nil {
		*r = chipreg.Word(data)
	}
}

// Write8 writes one half of a register. The chipset duplicates bytes written
// to the copper strobes and COPCON before they get here so a byte write to
// those is the same as a word write.
func (v *Video) Write8(offset uint32, data uint8) {
	offset &= bus.CustomRegMask
	switch offset &^ 1 {
	case bus.COPCON, bus.COPJMP1, bus.COPJMP2, bus.COPINS, bus.VPOSR, bus.VHPOSR:
		v.Write16(offset, chipreg.Duplicate(data))
		return
	case bus.COP1LCH, bus.COP1LCL, bus.COP2LCH, bus.COP2LCL:
		v.copper.lc[(offset&^1-bus.COP1LCH)/4].SetByte(offset, data)
		return
	}
	if r := v.register(offset); r != nil {
		r.SetByte(offset, data)
	}
}
