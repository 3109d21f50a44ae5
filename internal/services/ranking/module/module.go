// Package module provides the ranking module implementation
package module

import (
	"context"
	"io"

	"pixivrank/internal/modkit"

	"pixivrank/internal/adapters/ingest/pixiv"
	"pixivrank/internal/adapters/storage"
	perr "pixivrank/internal/platform/errors"
	"pixivrank/internal/services/ranking/domain"
	"pixivrank/internal/services/ranking/guardrails"
	"pixivrank/internal/services/ranking/service"
)

// Ports defines the ranking module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the ranking module
type Module struct {
	deps   modkit.Deps
	opts   Options
	ports  Ports
	closer io.Closer
}

// New constructs the ranking module from deps.Cfg (RANK_*).
// It opens the sink up front so a bad output location fails before any feed request
func New(ctx context.Context, deps modkit.Deps) (*Module, error) {
	opts := FromConfig(deps.Cfg)
	if err := opts.Validate(); err != nil {
		return nil, perr.WithOp(err, "ranking.module")
	}

	hc := deps.HTTP
	if hc == nil {
		hc = pixiv.NewHTTPClient(pixiv.HTTPOptions{
			UserAgent:           opts.UserAgent,
			Referer:             opts.Referer,
			Timeout:             opts.HTTPTimeout,
			MaxIdleConnsPerHost: opts.Workers + 4,
		})
	}

	m := &Module{deps: deps, opts: opts}

	var sink domain.Sink
	if opts.BucketURL != "" {
		b, err := storage.OpenBucket(ctx, opts.BucketURL, opts.BucketPrefix)
		if err != nil {
			return nil, err
		}
		sink, m.closer = b, b
	} else {
		d, err := storage.NewDir(opts.OutDir)
		if err != nil {
			return nil, err
		}
		sink = d
	}

	to := guardrails.Timeouts{Feed: opts.FeedTimeout, Asset: opts.AssetTimeout}
	agg := &service.Aggregator{
		Feed:        pixiv.NewClient(hc, opts.FeedURL),
		Filter:      service.Filter{MaxPages: opts.MaxPages},
		Timeouts:    to,
		PagesPerDay: opts.PagesPerDay,
		ExcludeDays: opts.ExcludeDays,
		AssetBase:   opts.AssetBase,
	}
	svc := service.New(agg, service.NewDownloader(hc, sink, to), service.Config{
		Workers:      opts.Workers,
		RetryBackoff: opts.RetryBackoff,
	})

	m.ports = Ports{Runner: svc}
	deps.Log.Debug().
		Int("workers", opts.Workers).
		Str("out_dir", opts.OutDir).
		Str("bucket", opts.BucketURL).
		Msg("ranking module ready")
	return m, nil
}

// Name returns the module name
func (m *Module) Name() string { return "ranking" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Options returns the resolved options
func (m *Module) Options() Options { return m.opts }

// Close releases the sink when it holds a connection
func (m *Module) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}
