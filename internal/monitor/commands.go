package monitor

import (
	"context"
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/nevisdale/amichip/internal/amiga"
	"github.com/nevisdale/amichip/internal/breakpoints"
	"github.com/nevisdale/amichip/internal/config"
	"github.com/nevisdale/amichip/internal/logger"
)

const (
	cmdQuit = "quit"

	defaultHexdump = 64
	defaultBindump = 16
	defaultLog     = 10
)

type command struct {
	usage   string
	help    string
	minArgs int
	run     func(mon *Monitor, ctx context.Context, args []string) error
}

// initialised in init() because help refers back to the table
var commands map[string]command

func init() {
	commands = map[string]command{
		"help": {
			help: "list commands",
			run: func(mon *Monitor, _ context.Context, _ []string) error {
				mon.help()
				return nil
			},
		},
		"m": {
			usage:   "addr [len]",
			help:    "hex dump",
			minArgs: 1,
			run: func(mon *Monitor, ctx context.Context, args []string) error {
				return mon.dump(ctx, args, defaultHexdump, false)
			},
		},
		"bin": {
			usage:   "addr [len]",
			help:    "binary dump",
			minArgs: 1,
			run: func(mon *Monitor, ctx context.Context, args []string) error {
				return mon.dump(ctx, args, defaultBindump, true)
			},
		},
		"w": {
			usage:   "addr byte...",
			help:    "write bytes",
			minArgs: 2,
			run:     (*Monitor).writeBytes,
		},
		"ww": {
			usage:   "addr word",
			help:    "write a word",
			minArgs: 2,
			run:     (*Monitor).writeWord,
		},
		"break": {
			usage:   "addr [len] [r|w|rw]",
			help:    "add a memory breakpoint",
			minArgs: 1,
			run:     (*Monitor).addMemoryBreakpoint,
		},
		"bpc": {
			usage:   "addr",
			help:    "add a program counter breakpoint",
			minArgs: 1,
			run:     (*Monitor).addPCBreakpoint,
		},
		"del": {
			usage:   "n",
			help:    "delete breakpoint n",
			minArgs: 1,
			run: func(mon *Monitor, _ context.Context, args []string) error {
				return mon.withBreakpoint(args[0], entry.remove)
			},
		},
		"enable": {
			usage:   "n",
			help:    "enable breakpoint n",
			minArgs: 1,
			run: func(mon *Monitor, _ context.Context, args []string) error {
				return mon.withBreakpoint(args[0], entry.enable)
			},
		},
		"disable": {
			usage:   "n",
			help:    "disable breakpoint n",
			minArgs: 1,
			run: func(mon *Monitor, _ context.Context, args []string) error {
				return mon.withBreakpoint(args[0], entry.disable)
			},
		},
		"list": {
			help: "list breakpoints",
			run: func(mon *Monitor, _ context.Context, _ []string) error {
				mon.list()
				return nil
			},
		},
		"regs": {
			help: "show the chip registers",
			run: func(mon *Monitor, ctx context.Context, _ []string) error {
				var s amiga.State
				if err := mon.m.Inspect(ctx, func() { s = mon.m.State() }); err != nil {
					return err
				}
				fmt.Fprintln(mon.out, s)
				return nil
			},
		},
		"step": {
			usage: "[n]",
			help:  "run n cycles",
			run:   (*Monitor).step,
		},
		"frame": {
			help: "run to the next vertical sync",
			run:  (*Monitor).frame,
		},
		"run": {
			help: "let the machine run",
			run: func(mon *Monitor, _ context.Context, _ []string) error {
				mon.m.SetPaused(false)
				return nil
			},
		},
		"pause": {
			help: "pause the machine",
			run: func(mon *Monitor, _ context.Context, _ []string) error {
				mon.m.SetPaused(true)
				return nil
			},
		},
		"reset": {
			help: "reset the machine",
			run: func(mon *Monitor, ctx context.Context, _ []string) error {
				return mon.m.Inspect(ctx, mon.m.Reset)
			},
		},
		"load": {
			usage:   "file addr",
			help:    "copy a file into memory",
			minArgs: 2,
			run:     (*Monitor).load,
		},
		"graph": {
			usage:   "file",
			help:    "write the chip state as a graphviz file",
			minArgs: 1,
			run:     (*Monitor).graph,
		},
		"log": {
			usage: "[n]",
			help:  "show the last n log entries",
			run: func(mon *Monitor, _ context.Context, args []string) error {
				n, err := optionalNumber(args, 0, defaultLog)
				if err != nil {
					return err
				}
				logger.Tail(mon.out, int(n))
				return nil
			},
		},
	}
}

func optionalNumber(args []string, i int, def uint32) (uint32, error) {
	if len(args) <= i {
		return def, nil
	}
	return config.ParseNumber(args[i])
}

func (mon *Monitor) dump(ctx context.Context, args []string, def uint32, binary bool) error {
	addr, err := config.ParseNumber(args[0])
	if err != nil {
		return err
	}
	n, err := optionalNumber(args, 1, def)
	if err != nil {
		return err
	}

	var s string
	ierr := mon.m.Inspect(ctx, func() {
		if binary {
			s, err = mon.m.Mem.Bindump(addr, int(n))
		} else {
			s, err = mon.m.Mem.Hexdump(addr, int(n))
		}
	})
	if ierr != nil {
		return ierr
	}
	if err != nil {
		return err
	}
	fmt.Fprint(mon.out, s)
	return nil
}

func (mon *Monitor) writeBytes(ctx context.Context, args []string) error {
	addr, err := config.ParseNumber(args[0])
	if err != nil {
		return err
	}
	data := make([]uint8, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := config.ParseNumber(a)
		if err != nil {
			return err
		}
		if v > 0xff {
			return fmt.Errorf("not a byte: %s", a)
		}
		data = append(data, uint8(v))
	}

	if ierr := mon.m.Inspect(ctx, func() { err = mon.m.Mem.PokeBytes(addr, data) }); ierr != nil {
		return ierr
	}
	return err
}

func (mon *Monitor) writeWord(ctx context.Context, args []string) error {
	addr, err := config.ParseNumber(args[0])
	if err != nil {
		return err
	}
	v, err := config.ParseNumber(args[1])
	if err != nil {
		return err
	}
	if v > 0xffff {
		return fmt.Errorf("not a word: %s", args[1])
	}

	if ierr := mon.m.Inspect(ctx, func() { err = mon.m.Mem.Poke16(addr, uint16(v)) }); ierr != nil {
		return ierr
	}
	return err
}

// the length and access kind of a memory breakpoint can come in either
// order
func (mon *Monitor) addMemoryBreakpoint(_ context.Context, args []string) error {
	addr, err := config.ParseNumber(args[0])
	if err != nil {
		return err
	}
	bp := breakpoints.MemoryBreakpoint{Addr: addr, Size: 1, Access: breakpoints.ReadWrite}
	for _, a := range args[1:] {
		if access, err := breakpoints.ParseAccess(a); err == nil {
			bp.Access = access
			continue
		}
		n, err := config.ParseNumber(a)
		if err != nil {
			return fmt.Errorf("usage: break %s", commands["break"].usage)
		}
		bp.Size = n
	}
	return mon.m.MemoryBreakpoints.Add(bp)
}

func (mon *Monitor) addPCBreakpoint(_ context.Context, args []string) error {
	addr, err := config.ParseNumber(args[0])
	if err != nil {
		return err
	}
	return mon.m.Breakpoints.Add(breakpoints.PC(addr))
}

func (mon *Monitor) step(ctx context.Context, args []string) error {
	n, err := optionalNumber(args, 0, 1)
	if err != nil {
		return err
	}
	var halt string
	var ticks uint64
	err = mon.m.Inspect(ctx, func() {
		halt = mon.m.Step(int(n))
		ticks = mon.m.Ticks()
	})
	if err != nil {
		return err
	}
	mon.reportHalt(halt)
	fmt.Fprintf(mon.out, "cycle %d\n", ticks)
	return nil
}

func (mon *Monitor) frame(ctx context.Context, _ []string) error {
	var halt string
	var frame int
	err := mon.m.Inspect(ctx, func() {
		halt = mon.m.RunFrame()
		frame = mon.m.Chips.Video.Frame()
	})
	if err != nil {
		return err
	}
	mon.reportHalt(halt)
	fmt.Fprintf(mon.out, "frame %d\n", frame)
	return nil
}

// a breakpoint hit while stepping pauses the machine, as it does in the run
// loop
func (mon *Monitor) reportHalt(halt string) {
	if halt == "" {
		return
	}
	mon.m.SetPaused(true)
	fmt.Fprintln(mon.out, halt)
}

func (mon *Monitor) load(ctx context.Context, args []string) error {
	addr, err := config.ParseNumber(args[1])
	if err != nil {
		return err
	}
	var n int
	if ierr := mon.m.Inspect(ctx, func() { n, err = mon.m.Load(args[0], addr) }); ierr != nil {
		return ierr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(mon.out, "loaded %d bytes at $%06x\n", n, addr)
	return nil
}

func (mon *Monitor) graph(ctx context.Context, args []string) error {
	var s amiga.State
	if err := mon.m.Inspect(ctx, func() { s = mon.m.State() }); err != nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	defer f.Close()
	memviz.Map(f, &s)
	return nil
}

// entry is a line of the breakpoint list. Breakpoints are numbered in list
// order: memory breakpoints then program counter breakpoints, enabled before
// disabled.
type entry struct {
	mem     breakpoints.MemoryBreakpoint
	pc      breakpoints.PC
	isPC    bool
	enabled bool
}

func (e entry) String() string {
	var s string
	if e.isPC {
		s = "pc " + e.pc.String()
	} else {
		s = "mem " + e.mem.String()
	}
	if !e.enabled {
		s += " (disabled)"
	}
	return s
}

func (e entry) remove(m *amiga.Machine) error {
	if e.isPC {
		return m.Breakpoints.Remove(e.pc)
	}
	return m.MemoryBreakpoints.Remove(e.mem)
}

func (e entry) enable(m *amiga.Machine) error {
	if e.isPC {
		return m.Breakpoints.Enable(e.pc)
	}
	return m.MemoryBreakpoints.Enable(e.mem)
}

func (e entry) disable(m *amiga.Machine) error {
	if e.isPC {
		return m.Breakpoints.Disable(e.pc)
	}
	return m.MemoryBreakpoints.Disable(e.mem)
}

func (mon *Monitor) entries() []entry {
	var l []entry
	ms := mon.m.MemoryBreakpoints.Snapshot()
	for _, bp := range ms.Enabled {
		l = append(l, entry{mem: bp, enabled: true})
	}
	for _, bp := range ms.Disabled {
		l = append(l, entry{mem: bp})
	}
	ps := mon.m.Breakpoints.Snapshot()
	for _, pc := range ps.Enabled {
		l = append(l, entry{pc: pc, isPC: true, enabled: true})
	}
	for _, pc := range ps.Disabled {
		l = append(l, entry{pc: pc, isPC: true})
	}
	return l
}

func (mon *Monitor) list() {
	l := mon.entries()
	if len(l) == 0 {
		fmt.Fprintln(mon.out, "no breakpoints")
		return
	}
	for i, e := range l {
		fmt.Fprintf(mon.out, "% 2d: %s\n", i, e)
	}
}

func (mon *Monitor) withBreakpoint(arg string, f func(entry, *amiga.Machine) error) error {
	n, err := config.ParseNumber(arg)
	if err != nil {
		return err
	}
	l := mon.entries()
	if int(n) >= len(l) {
		return fmt.Errorf("breakpoint #%d is not defined", n)
	}
	return f(l[n], mon.m)
}
