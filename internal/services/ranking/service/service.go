// Package service runs the ranking aggregation and download pipeline
package service

import (
	"context"
	"slices"
	"time"

	"pixivrank/internal/platform/logger"
	"pixivrank/internal/services/ranking/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the download pool size
const DefaultWorkers = 20

// Config holds the run tuning
type Config struct {
	Workers      int           // <=0 -> DefaultWorkers
	RetryBackoff time.Duration // <=0 -> no pause between retries
}

// Service implements domain.RunnerPort
type Service struct {
	Agg   *Aggregator
	Fetch domain.AssetFetcher
	Cfg   Config

	newRunID func() string
}

// New constructs the ranking service
func New(agg *Aggregator, fetch domain.AssetFetcher, cfg Config) *Service {
	if agg == nil || agg.Feed == nil {
		panic("ranking.Service requires an Aggregator with a FeedClient")
	}
	if fetch == nil {
		panic("ranking.Service requires a non nil AssetFetcher")
	}
	return &Service{Agg: agg, Fetch: fetch, Cfg: cfg, newRunID: uuid.NewString}
}

// Run aggregates the window, queues every item and drains the queue with the
// worker pool. Feed failures abort before any download starts
func (s *Service) Run(ctx context.Context, startOffsetDays, windowLengthDays int) (domain.Summary, error) {
	ctx = logger.WithRun(ctx, s.newRunID())
	log := logger.C(ctx)
	started := time.Now()

	agg, err := s.Agg.Aggregate(ctx, startOffsetDays, windowLengthDays)
	if err != nil {
		return domain.Summary{}, err
	}
	log.Info().Int("total", len(agg)).Msg("ranking: items to download")

	q := NewDispatcher()
	ids := make([]uint64, 0, len(agg))
	for id := range agg {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := q.Send(agg[id]); err != nil {
			return domain.Summary{}, err
		}
	}
	q.Close()

	workers := s.Cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	stats := &counters{}
	g, gctx := errgroup.WithContext(ctx)
	for i := range workers {
		w := &Worker{ID: i, Queue: q, Fetch: s.Fetch, Backoff: s.Cfg.RetryBackoff, stats: stats}
		g.Go(func() error { return w.Run(gctx) })
	}
	err = g.Wait()

	sum := stats.summary(len(agg))
	log.Info().
		Int("items", sum.Items).
		Int64("saved", sum.Saved).
		Int64("not_found", sum.NotFound).
		Int64("skipped", sum.Skipped).
		Int64("retries", sum.Retries).
		Dur("took", time.Since(started)).
		Msg("ranking: run finished")
	return sum, err
}
