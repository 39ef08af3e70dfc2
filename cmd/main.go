package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/nevisdale/amichip/internal/amiga"
	"github.com/nevisdale/amichip/internal/config"
	"github.com/nevisdale/amichip/internal/logger"
	"github.com/nevisdale/amichip/internal/monitor"
	"github.com/nevisdale/amichip/internal/statsview"
	"github.com/nevisdale/amichip/internal/ui"
	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"
)

type options struct {
	cfg     config.Config
	rom     string
	profile string
	ui      bool
	monitor bool
	stats   bool
}

func parseArgs(args []string) (options, error) {
	opts := options{cfg: config.Default()}

	fs := flag.NewFlagSet("amichip", flag.ContinueOnError)
	opts.cfg.RegisterFlags(fs)
	fs.StringVar(&opts.rom, "rom", "", "kickstart ROM image")
	fs.StringVar(&opts.profile, "profile", "", "write a cpu or mem profile to the working directory")
	fs.BoolVar(&opts.ui, "ui", true, "open the debug window")
	fs.BoolVar(&opts.monitor, "monitor", false, "run the monitor on the terminal")
	fs.BoolVar(&opts.stats, "statsview", false, "serve runtime statistics on "+statsview.Address)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch opts.profile {
	case "", "cpu", "mem":
	default:
		return opts, fmt.Errorf("unknown profile: %s", opts.profile)
	}
	return opts, opts.cfg.Validate()
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("couldn't parse arguments: %s\n", err.Error())
	}

	if err := run(opts); err != nil {
		log.Fatalf("amichip: %s\n", err.Error())
	}
}

func run(opts options) error {
	switch opts.profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	m, err := amiga.NewMachine(opts.cfg, nil)
	if err != nil {
		return err
	}
	if opts.rom != "" {
		if err := m.LoadROM(opts.rom); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return m.Run(ctx)
	})

	if opts.stats {
		statsview.Launch(ctx, os.Stdout)
	}

	if opts.monitor {
		rw, restore, err := monitor.Stdio()
		if err != nil {
			return err
		}
		defer restore()

		mon := monitor.New(m, rw)
		runMonitor := func() error {
			defer cancel()
			return mon.Run(ctx)
		}
		// the window owns the process: closing it doesn't wait for a
		// monitor blocked on input
		if opts.ui {
			go func() { _ = runMonitor() }()
		} else {
			g.Go(runMonitor)
		}
	} else if !opts.ui {
		logger.SetEcho(os.Stdout)
	}

	if opts.ui {
		err := ui.RunUI(ui.New(m))
		cancel()
		if err != nil {
			return err
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
