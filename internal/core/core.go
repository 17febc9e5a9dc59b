package core

import (
	"context"
	"errors"

	"github.com/openledger/yalc/internal/metrics"
	"github.com/openledger/yalc/internal/models"
	"github.com/openledger/yalc/internal/store"
)

// ErrStopped settles an operation whose event could not be delivered because
// the loop has stopped. Every operation terminates with it rather than
// leaving its waiter blocked.
var ErrStopped = errors.New("core loop stopped")

// Service is the slice of the ledger API the core drives.
type Service interface {
	GetChain(ctx context.Context) (models.Chain, error)
	NewTransaction(ctx context.Context, tx models.Transaction) (string, error)
	Mine(ctx context.Context) (*models.MineResponse, error)
	ResolveConflicts(ctx context.Context) (*models.ResolveResponse, error)
}

type event func()

// Core runs the client's event loop. A single goroutine owns the snapshot
// store; public operations enqueue events and network round trips run on
// their own goroutines, posting their continuations back as events. Exactly
// one event handler runs at a time, so the store needs no lock even though
// any number of requests may be in flight.
type Core struct {
	store   *store.Store
	service Service
	ops     *metrics.Ops

	events  chan event
	stopped chan struct{}
}

func New(st *store.Store, service Service, ops *metrics.Ops) *Core {
	return &Core{
		store:   st,
		service: service,
		ops:     ops,
		events:  make(chan event),
		stopped: make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled. It must be running before any
// operation is invoked.
func (c *Core) Run(ctx context.Context) {
	defer close(c.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.events:
			ev()
		}
	}
}

// post hands an event to the loop goroutine and reports whether it was
// delivered. A delivered event always runs; an undelivered one means the
// loop has stopped and the caller must settle its own waiters.
func (c *Core) post(ev event) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.stopped:
		return false
	}
}

// Snapshot returns the current store contents via the loop goroutine.
func (c *Core) Snapshot() store.Snapshot {
	out := make(chan store.Snapshot, 1)
	if !c.post(func() { out <- c.store.Get() }) {
		return store.Snapshot{}
	}
	return <-out
}

// SetField replaces one session field, as presentation code does while the
// user types.
func (c *Core) SetField(name, value string) {
	c.post(func() { c.store.SetField(name, value) })
}
