package service

import (
	"context"
	"sync"

	perr "pixivrank/internal/platform/errors"
	"pixivrank/internal/services/ranking/domain"
)

// Dispatcher is an unbounded FIFO of work items shared by the worker pool.
// Once closed it accepts nothing further and Recv reports drained after the last item
type Dispatcher struct {
	mu     sync.Mutex
	items  []domain.WorkItem
	closed bool
	// ready is signalled (non-blocking) on every Send and Close
	ready chan struct{}
}

// NewDispatcher returns an empty open queue
func NewDispatcher() *Dispatcher {
	return &Dispatcher{ready: make(chan struct{}, 1)}
}

// Send enqueues w at the tail. Never blocks
func (d *Dispatcher) Send(w domain.WorkItem) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return perr.New(perr.ErrorCodeInvalidArgument, "dispatcher closed")
	}
	d.items = append(d.items, w)
	d.mu.Unlock()
	d.notify()
	return nil
}

// Close marks the end of input. Safe to call more than once
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.notify()
}

// Recv removes the head item. ok is false once the queue is closed and empty
func (d *Dispatcher) Recv(ctx context.Context) (w domain.WorkItem, ok bool, err error) {
	for {
		d.mu.Lock()
		if len(d.items) > 0 {
			w = d.items[0]
			d.items[0] = domain.WorkItem{}
			d.items = d.items[1:]
			more := len(d.items) > 0 || d.closed
			d.mu.Unlock()
			if more {
				// pass the wakeup on to the next waiter
				d.notify()
			}
			return w, true, nil
		}
		if d.closed {
			d.mu.Unlock()
			d.notify()
			return domain.WorkItem{}, false, nil
		}
		d.mu.Unlock()

		select {
		case <-ctx.Done():
			return domain.WorkItem{}, false, ctx.Err()
		case <-d.ready:
		}
	}
}

// Len is the number of queued items
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Drained reports whether the queue is closed and empty
func (d *Dispatcher) Drained() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed && len(d.items) == 0
}

func (d *Dispatcher) notify() {
	select {
	case d.ready <- struct{}{}:
	default:
	}
}
