package service

import (
	"context"
	"sync/atomic"
	"time"

	"pixivrank/internal/core/normalize"
	perr "pixivrank/internal/platform/errors"
	"pixivrank/internal/platform/logger"
	"pixivrank/internal/services/ranking/domain"
)

// DefaultRetryBackoff is the pause between attempts after a transport failure
const DefaultRetryBackoff = time.Second

// counters are shared by every worker of a run
type counters struct {
	saved, notFound, skipped, retries atomic.Int64
}

func (c *counters) record(o domain.Outcome) {
	switch o {
	case domain.OutcomeSaved:
		c.saved.Add(1)
	case domain.OutcomeNotFound:
		c.notFound.Add(1)
	case domain.OutcomeSkipped:
		c.skipped.Add(1)
	}
}

func (c *counters) summary(items int) domain.Summary {
	return domain.Summary{
		Items:    items,
		Saved:    c.saved.Load(),
		NotFound: c.notFound.Load(),
		Skipped:  c.skipped.Load(),
		Retries:  c.retries.Load(),
	}
}

// Worker drains the queue one item at a time
type Worker struct {
	ID      int
	Queue   *Dispatcher
	Fetch   domain.AssetFetcher
	Backoff time.Duration

	stats *counters
}

// Run downloads items until the queue is drained or ctx is done.
// Pages of an item are fetched highest first
func (w *Worker) Run(ctx context.Context) error {
	ctx = logger.WithWorker(ctx, w.ID)
	if w.stats == nil {
		w.stats = &counters{}
	}
	for {
		item, ok, err := w.Queue.Recv(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		for i := item.Pages - 1; i >= 0; i-- {
			if err := w.page(ctx, item, i); err != nil {
				return err
			}
		}

		logger.C(ctx).Info().
			Uint64("illust_id", item.ID).
			Str("title", normalize.Clip(item.Title, 48)).
			Int("remaining", w.Queue.Len()).
			Msg("ranking: item done")

		if w.Queue.Drained() {
			logger.C(ctx).Debug().Msg("ranking: queue drained, worker exiting")
			return nil
		}
	}
}

// page fetches one page, retrying transport failures until it lands or ctx ends
func (w *Worker) page(ctx context.Context, item domain.WorkItem, i int) error {
	url := item.PageURL(i, domain.ExtPrimary)
	name := item.FileName(i, domain.ExtPrimary)
	for attempt := 1; ; attempt++ {
		res, err := w.Fetch.Fetch(ctx, url, name)
		if err == nil {
			w.stats.record(res.Outcome)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !perr.Retryable(err) {
			return err
		}

		w.stats.retries.Add(1)
		logger.C(ctx).Warn().Err(err).
			Str("url", url).
			Int("attempt", attempt).
			Dur("backoff", w.Backoff).
			Msg("ranking: download failed, retrying")
		if err := sleepCtx(ctx, w.Backoff); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
