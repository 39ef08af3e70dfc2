package amiga

import (
	"context"
	"time"

	"github.com/nevisdale/amichip/internal/logger"
)

// PushFunction queues f to be run on the goroutine running the machine. It
// never blocks: if the queue is full the function is dropped and the drop is
// logged.
func (m *Machine) PushFunction(f func()) {
	select {
	case m.functions <- f:
	default:
		logger.Log(logger.Allow, "amiga", "dropped pushed function")
	}
}

// Inspect runs f on the goroutine running the machine and waits for it to
// return. f may read and change any part of the machine.
func (m *Machine) Inspect(ctx context.Context, f func()) error {
	done := make(chan struct{})
	g := func() {
		defer close(done)
		f()
	}

	select {
	case m.functions <- g:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run runs the machine one frame per refresh period of the video standard
// until the context is done. Pushed functions are run between frames, and
// while the machine is paused. A breakpoint hit pauses the machine.
func (m *Machine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(m.cfg.RefreshRate()))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-m.functions:
			f()
		case <-ticker.C:
			if m.Paused() {
				continue
			}
			if halt := m.RunFrame(); halt != "" {
				m.SetPaused(true)
				logger.Log(logger.Allow, "amiga", halt)
			}
		}
	}
}
