package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pixivrank/internal/services/ranking/domain"
	"pixivrank/internal/services/ranking/guardrails"
)

func timeoutsForTest() guardrails.Timeouts {
	return guardrails.Timeouts{Asset: 5 * time.Second}
}

func queueOf(items ...domain.WorkItem) *Dispatcher {
	q := NewDispatcher()
	for _, it := range items {
		_ = q.Send(it)
	}
	q.Close()
	return q
}

func TestWorker_PagesHighestFirst(t *testing.T) {
	f := &scriptedFetcher{}
	w := &Worker{Queue: queueOf(domain.WorkItem{OriginPrefix: "u/9_", ID: 9, Pages: 3}), Fetch: f}
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"9_p2.jpg", "9_p1.jpg", "9_p0.jpg"}
	if len(f.order) != len(want) {
		t.Fatalf("order = %v", f.order)
	}
	for i := range want {
		if f.order[i] != want[i] {
			t.Fatalf("order = %v, want %v", f.order, want)
		}
	}
	if w.stats.saved.Load() != 3 {
		t.Fatalf("saved = %d", w.stats.saved.Load())
	}
}

func TestWorker_RetriesTransportFailures(t *testing.T) {
	const n = 4
	f := &scriptedFetcher{failures: n}
	w := &Worker{
		Queue:   queueOf(domain.WorkItem{OriginPrefix: "u/1_", ID: 1, Pages: 1}),
		Fetch:   f,
		Backoff: time.Millisecond,
	}
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := f.attempts["u/1_p0.jpg"]; got != n+1 {
		t.Fatalf("attempts = %d, want %d", got, n+1)
	}
	if w.stats.retries.Load() != n || w.stats.saved.Load() != 1 {
		t.Fatalf("retries=%d saved=%d", w.stats.retries.Load(), w.stats.saved.Load())
	}
}

func TestWorker_StopsRetryingWhenCancelled(t *testing.T) {
	f := &scriptedFetcher{failures: 1 << 30}
	w := &Worker{
		Queue:   queueOf(domain.WorkItem{OriginPrefix: "u/1_", ID: 1, Pages: 1}),
		Fetch:   f,
		Backoff: 5 * time.Millisecond,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := w.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
}

func TestWorker_CountsOutcomes(t *testing.T) {
	f := &scriptedFetcher{outcome: domain.OutcomeSkipped}
	w := &Worker{Queue: queueOf(domain.WorkItem{OriginPrefix: "u/1_", ID: 1, Pages: 2}), Fetch: f}
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	sum := w.stats.summary(1)
	if sum.Skipped != 2 || sum.Saved != 0 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestWorker_EmptyClosedQueueExits(t *testing.T) {
	w := &Worker{Queue: queueOf(), Fetch: &scriptedFetcher{}}
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
