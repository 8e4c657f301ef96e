package search

import (
	"context"
	"log"
	"sync"
	"time"

	"snapsearch/internal/domain"
)

// Searcher performs one search call against the photo API
type Searcher interface {
	Search(ctx context.Context, query string, page, perPage int) (*domain.SearchPage, error)
}

// Result is the outcome of a dispatched Request
type Result struct {
	Request Request
	Page    *domain.SearchPage
	Err     error
}

// Dispatcher runs requests against a Searcher. Starting a request cancels
// the one still in flight, so at most one call does useful work at a time.
type Dispatcher struct {
	searcher Searcher
	timeout  time.Duration

	mu       sync.Mutex
	inflight uint64
	cancel   context.CancelFunc
}

// NewDispatcher creates a dispatcher. A zero timeout disables the per-request deadline.
func NewDispatcher(searcher Searcher, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		searcher: searcher,
		timeout:  timeout,
	}
}

// Do runs req and blocks until it resolves. Cancellation of a superseded
// request shows up as an error in its Result; the controller drops it by Seq.
func (d *Dispatcher) Do(parent context.Context, req Request) Result {
	ctx, cancel := d.begin(parent, req.Seq)
	defer d.end(req.Seq, cancel)

	page, err := d.searcher.Search(ctx, req.Query, req.Page, PageSize)
	if err != nil {
		log.Printf("search #%d %q page %d failed: %v", req.Seq, req.Query, req.Page, err)
		return Result{Request: req, Err: err}
	}
	return Result{Request: req, Page: page}
}

// Cancel aborts the request in flight, if any
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
		d.inflight = 0
	}
}

func (d *Dispatcher) begin(parent context.Context, seq uint64) (context.Context, context.CancelFunc) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if d.timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, d.timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	// Requests may reach the dispatcher out of order; an older one never
	// cancels a newer one.
	if seq < d.inflight {
		return ctx, cancel
	}
	if d.cancel != nil {
		d.cancel()
	}
	d.inflight = seq
	d.cancel = cancel
	return ctx, cancel
}

func (d *Dispatcher) end(seq uint64, cancel context.CancelFunc) {
	cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inflight == seq {
		d.inflight = 0
		d.cancel = nil
	}
}
