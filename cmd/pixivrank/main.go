package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pixivrank/internal/core/version"
	"pixivrank/internal/modkit"
	"pixivrank/internal/modkit/module"
	"pixivrank/internal/platform/config"
	"pixivrank/internal/platform/logger"

	rankingmod "pixivrank/internal/services/ranking/module"
)

// window is the parsed command line
type window struct {
	startOffset int
	length      int
	version     bool
}

// parseFlags reads -d/-day-start and -l/-day-length; both must be given
func parseFlags(fs *flag.FlagSet, args []string) (window, error) {
	var w window
	fs.IntVar(&w.startOffset, "d", 0, "days back from today to anchor the window")
	fs.IntVar(&w.startOffset, "day-start", 0, "days back from today to anchor the window")
	fs.IntVar(&w.length, "l", 0, "number of days in the window")
	fs.IntVar(&w.length, "day-length", 0, "number of days in the window")
	fs.BoolVar(&w.version, "version", false, "print the build version and exit")
	if err := fs.Parse(args); err != nil {
		return w, err
	}
	if w.version {
		return w, nil
	}

	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	if !seen["d"] && !seen["day-start"] {
		return w, errors.New("missing required flag -d/-day-start")
	}
	if !seen["l"] && !seen["day-length"] {
		return w, errors.New("missing required flag -l/-day-length")
	}
	if w.startOffset < 0 || w.length < 0 {
		return w, errors.New("-d and -l must be non negative")
	}
	return w, nil
}

func main() {
	build := version.Info()
	lo := logger.FromEnv()
	lo.StaticFields = build.Fields()
	logger.Init(lo)
	l := logger.Get()

	fs := flag.NewFlagSet("pixivrank", flag.ContinueOnError)
	win, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		l.Fatal().Err(err).Msg("bad arguments")
	}
	if win.version {
		fmt.Println("pixivrank " + build.String())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := modkit.Deps{Log: *l, Cfg: config.New()}
	rm, err := rankingmod.New(ctx, deps)
	if err != nil {
		l.Fatal().Err(err).Msg("ranking module init failed")
	}
	defer func() {
		if err := rm.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close sink")
		}
	}()
	module.Register(rm.Name(), rm.Ports())

	ports := rm.Ports().(rankingmod.Ports)
	sum, err := ports.Runner.Run(ctx, win.startOffset, win.length)
	if err != nil {
		_ = rm.Close()
		l.Fatal().Err(err).Msg("ranking run failed")
	}
	l.Info().
		Int("items", sum.Items).
		Int64("saved", sum.Saved).
		Int64("not_found", sum.NotFound).
		Int64("skipped", sum.Skipped).
		Msg("done")
}
