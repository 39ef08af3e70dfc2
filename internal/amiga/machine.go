package amiga

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/nevisdale/amichip/internal/blitter"
	"github.com/nevisdale/amichip/internal/breakpoints"
	"github.com/nevisdale/amichip/internal/chipset"
	"github.com/nevisdale/amichip/internal/cia"
	"github.com/nevisdale/amichip/internal/config"
	"github.com/nevisdale/amichip/internal/dma"
	"github.com/nevisdale/amichip/internal/irq"
	"github.com/nevisdale/amichip/internal/memory"
	"github.com/nevisdale/amichip/internal/video"
)

// CPU is the processor. It is not part of this module: a CPU reads and writes
// through Machine.Mem and is ticked before the chips.
type CPU interface {
	Reset()

	// Tick runs one cycle. It returns true when the cycle ends an
	// instruction.
	Tick() bool

	// PC is the address of the next instruction.
	PC() uint32
}

// size of the queue of pushed functions
const pushQueueSize = 64

// Machine owns the memory and every chip.
//
// Apart from PushFunction, Inspect and the pause controls, the methods of
// Machine must be called on the goroutine running the machine. Other
// goroutines get work done there with PushFunction or Inspect.
type Machine struct {
	cfg config.Config
	rom *memory.ROM
	cpu CPU

	Mem   *memory.Memory
	Chips *chipset.Chips
	CIAA  *cia.CIA
	CIAB  *cia.CIA

	MemoryBreakpoints *breakpoints.MemoryBreakpoints
	Breakpoints       *breakpoints.Breakpoints

	ticks uint64

	// why the machine last halted itself
	halt string

	paused    atomic.Bool
	functions chan func()
}

// NewMachine creates a machine. The configuration must be valid. The ROM may
// be nil, in which case the ROM window is unmapped.
func NewMachine(cfg config.Config, rom *memory.ROM) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("amiga: %w", err)
	}

	m := &Machine{
		cfg:               cfg,
		rom:               rom,
		CIAA:              cia.NewCIA("CIA-A"),
		CIAB:              cia.NewCIA("CIA-B"),
		MemoryBreakpoints: breakpoints.NewMemoryBreakpoints(),
		Breakpoints:       breakpoints.NewBreakpoints(),
		functions:         make(chan func(), pushQueueSize),
	}

	mmu := memory.NewMMU(m.fault)
	m.Mem = memory.NewMemory(mmu)
	m.Mem.SetObserver(m.MemoryBreakpoints)

	m.Chips = &chipset.Chips{
		DMA: dma.NewController(),
		IRQ: irq.NewController(),
	}
	m.Chips.Blitter = blitter.NewBlitter(m.Mem, m.Chips.DMA, m.Chips.IRQ)
	m.Chips.Video = video.NewVideo(m.Mem, m.Chips.DMA, m.Chips.Blitter, m.Chips, m.Chips.IRQ, int(cfg.CyclesPerFrame()))

	// the order of a tick
	mmu.Attach(m.CIAA, m.CIAB, m.Chips.Blitter, m.Chips.Video)

	return m, nil
}

func (m *Machine) Config() config.Config {
	return m.cfg
}

// SetCPU attaches the processor. The machine is reset.
func (m *Machine) SetCPU(cpu CPU) {
	m.cpu = cpu
	m.Reset()
}

// SetROM replaces the ROM image. The machine is reset.
func (m *Machine) SetROM(rom *memory.ROM) {
	m.rom = rom
	m.Reset()
}

// LoadROM reads a ROM image and resets the machine with it.
func (m *Machine) LoadROM(path string) error {
	rom, err := memory.LoadROM(path)
	if err != nil {
		return err
	}
	m.SetROM(rom)
	return nil
}

// Load copies a file into memory at addr. The copy stops at the first write
// protected page.
func (m *Machine) Load(path string, addr uint32) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("amiga: %w", err)
	}
	if err := m.Mem.BulkWrite(addr, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Reset drops the contents of RAM and resets every chip. Breakpoints are
// kept.
func (m *Machine) Reset() {
	m.Mem.Reset()
	m.Chips.DMA.Reset()
	m.Chips.IRQ.Reset()
	if m.cpu != nil {
		m.cpu.Reset()
	}
	m.ticks = 0
	m.halt = ""
	_, _ = m.MemoryBreakpoints.TakeHit()
}

// Tick advances the machine by one CPU cycle: the CPU, then the CIAs, the
// blitter and the video chip. It returns a description of the breakpoint
// that was hit during the cycle or the empty string.
func (m *Machine) Tick() string {
	boundary := false
	if m.cpu != nil {
		boundary = m.cpu.Tick()
	}
	m.Mem.MMU().Tick()
	m.ticks++

	if h, ok := m.MemoryBreakpoints.TakeHit(); ok {
		m.halt = h.String()
		return m.halt
	}
	if boundary && m.Breakpoints.Check(m.cpu.PC()) {
		m.halt = fmt.Sprintf("break %s", breakpoints.PC(m.cpu.PC()))
		return m.halt
	}
	return ""
}

// Step runs n cycles, stopping early at a breakpoint.
func (m *Machine) Step(n int) string {
	for i := 0; i < n; i++ {
		if halt := m.Tick(); halt != "" {
			return halt
		}
	}
	return ""
}

// RunFrame runs until the next vertical sync, stopping early at a breakpoint.
func (m *Machine) RunFrame() string {
	return m.Step(m.Chips.Video.CyclesToVSync())
}

// Ticks returns the number of cycles since the last reset.
func (m *Machine) Ticks() uint64 {
	return m.ticks
}

// Halt returns the reason the machine last stopped at a breakpoint.
func (m *Machine) Halt() string {
	return m.halt
}

// Paused can be called from any goroutine.
func (m *Machine) Paused() bool {
	return m.paused.Load()
}

// SetPaused can be called from any goroutine.
func (m *Machine) SetPaused(paused bool) {
	m.paused.Store(paused)
}

// TogglePause can be called from any goroutine.
func (m *Machine) TogglePause() {
	for {
		p := m.paused.Load()
		if m.paused.CompareAndSwap(p, !p) {
			return
		}
	}
}
