package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/nevisdale/amichip/internal/amiga"
	"golang.org/x/term"
)

const prompt = "> "

// Monitor is a line oriented machine monitor. It runs on its own goroutine
// and reaches the machine through Inspect, so the machine must be running.
type Monitor struct {
	m    *amiga.Machine
	term *term.Terminal
	out  io.Writer
}

func New(m *amiga.Machine, rw io.ReadWriter) *Monitor {
	t := term.NewTerminal(rw, prompt)
	return &Monitor{
		m:    m,
		term: t,
		out:  t,
	}
}

// Stdio returns a ReadWriter for the monitor on the process terminal. If
// stdin is a terminal it is put into raw mode, for line editing, until
// restore is called.
func Stdio() (rw io.ReadWriter, restore func(), err error) {
	rw = struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return rw, func() {}, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("monitor: %w", err)
	}
	return rw, func() { _ = term.Restore(fd, old) }, nil
}

// Run reads and executes commands until the quit command, the end of input
// or the context is done.
func (mon *Monitor) Run(ctx context.Context) error {
	for {
		line, err := mon.term.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		quit, err := mon.Execute(ctx, line)
		if err != nil {
			fmt.Fprintf(mon.out, "%v\n", err)
		}
		if quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Execute runs one command line. It returns true for the quit command.
func (mon *Monitor) Execute(ctx context.Context, line string) (bool, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false, nil
	}

	name := strings.ToLower(tokens[0])
	if name == cmdQuit {
		return true, nil
	}

	cmd, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("unknown command: %s", tokens[0])
	}
	args := tokens[1:]
	if len(args) < cmd.minArgs {
		return false, fmt.Errorf("usage: %s %s", name, cmd.usage)
	}
	return false, cmd.run(mon, ctx, args)
}

func (mon *Monitor) help() {
	names := make([]string, 0, len(commands)+1)
	for name := range commands {
		names = append(names, name)
	}
	names = append(names, cmdQuit)
	slices.Sort(names)
	for _, name := range names {
		if name == cmdQuit {
			fmt.Fprintf(mon.out, "%-8s leave the monitor\n", name)
			continue
		}
		c := commands[name]
		fmt.Fprintf(mon.out, "%-8s %s\n", name, strings.TrimSpace(c.usage+"  "+c.help))
	}
}
