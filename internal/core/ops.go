package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/openledger/yalc/internal/metrics"
	"github.com/openledger/yalc/internal/models"
	"github.com/openledger/yalc/internal/store"
)

// Status lines surfaced to the presentation layer. The status slot holds
// exactly one line, overwritten by the next operation's outcome.
const (
	StatusFillFields    = "Please fill in all fields"
	StatusSubmitted     = "Transaction submitted"
	StatusSubmitFailed  = "Transaction submission failed"
	StatusMineFailed    = "Mining failed"
	StatusResolved      = "Conflict resolution complete"
	StatusResolveFailed = "Conflict resolution failed"
)

// ErrMissingFields is returned by Submit when the local validation gate
// rejects the input before any network call.
var ErrMissingFields = errors.New("sender, recipient and amount are all required")

// settle terminates an operation whose continuation could not reach the
// loop goroutine.
func settle(done chan error) {
	done <- ErrStopped
	close(done)
}

// Sync refreshes the snapshot chain from the service. The returned channel
// yields the transport or parse error, if any, once the response has been
// applied or discarded. Failures never clobber the existing chain and are
// not surfaced through the status line.
func (c *Core) Sync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	if !c.post(func() { c.startSync(ctx, done) }) {
		settle(done)
	}
	return done
}

// startSync must run on the loop goroutine: the generation token is
// allocated there so concurrent syncs are ordered by issue time.
func (c *Core) startSync(ctx context.Context, done chan error) {
	gen := c.store.NextSyncGeneration()
	go func() {
		chain, err := c.service.GetChain(ctx)
		delivered := c.post(func() {
			defer close(done)
			if err != nil {
				slog.Error("Chain sync failed", "error", err)
				c.ops.Syncs.WithLabelValues(metrics.OutcomeFailure).Inc()
				done <- err
				return
			}
			if !c.store.ReplaceChain(chain, gen) {
				slog.Debug("Discarded stale chain response", "generation", gen)
				c.ops.StaleSyncs.Inc()
				return
			}
			c.ops.Syncs.WithLabelValues(metrics.OutcomeSuccess).Inc()
		})
		if !delivered {
			settle(done)
		}
	}()
}

// Submit validates the form fields and proposes a transaction. On success
// the fields are cleared, the status carries the service's acknowledgement
// and a fresh sync is triggered; on failure the fields are kept so the user
// can retry. The returned channel yields the submission outcome once the
// chained sync, if any, has completed.
func (c *Core) Submit(ctx context.Context, sender, recipient, amountText string) <-chan error {
	done := make(chan error, 1)
	delivered := c.post(func() {
		amount, parseErr := strconv.ParseFloat(amountText, 64)
		if sender == "" || recipient == "" || amountText == "" || parseErr != nil {
			c.store.SetStatus(StatusFillFields)
			c.ops.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
			done <- ErrMissingFields
			close(done)
			return
		}

		tx := models.Transaction{Sender: sender, Recipient: recipient, Amount: amount}
		go func() {
			message, err := c.service.NewTransaction(ctx, tx)
			delivered := c.post(func() {
				if err != nil {
					slog.Error("Transaction submission failed", "error", err)
					c.store.SetStatus(StatusSubmitFailed)
					c.ops.Submissions.WithLabelValues(metrics.OutcomeFailure).Inc()
					done <- err
					close(done)
					return
				}
				if message == "" {
					message = StatusSubmitted
				}
				c.store.SetStatus(message)
				c.store.SetField(store.FieldSender, "")
				c.store.SetField(store.FieldRecipient, "")
				c.store.SetField(store.FieldAmount, "")
				c.ops.Submissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
				c.chainSyncThen(ctx, done)
			})
			if !delivered {
				settle(done)
			}
		}()
	})
	if !delivered {
		settle(done)
	}
	return done
}

// Mine asks the service to forge the next block. The status line embeds the
// forged block's index on success; a failed mine triggers no sync.
func (c *Core) Mine(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	delivered := c.post(func() {
		go func() {
			res, err := c.service.Mine(ctx)
			delivered := c.post(func() {
				if err != nil {
					slog.Error("Mining request failed", "error", err)
					c.store.SetStatus(StatusMineFailed)
					c.ops.Mines.WithLabelValues(metrics.OutcomeFailure).Inc()
					done <- err
					close(done)
					return
				}
				c.store.SetStatus(fmt.Sprintf("Mined block %d", res.Index))
				c.ops.Mines.WithLabelValues(metrics.OutcomeSuccess).Inc()
				slog.Info("Block forged",
					"index", res.Index,
					"proof", res.Proof,
					"transactions", len(res.Transactions))
				c.chainSyncThen(ctx, done)
			})
			if !delivered {
				settle(done)
			}
		}()
	})
	if !delivered {
		settle(done)
	}
	return done
}

// Resolve asks the service to run its consensus algorithm, then re-syncs so
// the snapshot reflects the post-consensus chain.
func (c *Core) Resolve(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	delivered := c.post(func() {
		go func() {
			res, err := c.service.ResolveConflicts(ctx)
			delivered := c.post(func() {
				if err != nil {
					slog.Error("Conflict resolution failed", "error", err)
					c.store.SetStatus(StatusResolveFailed)
					done <- err
					close(done)
					return
				}
				message := res.Message
				if message == "" {
					message = StatusResolved
				}
				c.store.SetStatus(message)
				c.chainSyncThen(ctx, done)
			})
			if !delivered {
				settle(done)
			}
		}()
	})
	if !delivered {
		settle(done)
	}
	return done
}

// chainSyncThen must run on the loop goroutine. It starts a sync and
// completes done once the sync settles. Sync failures are not the calling
// operation's failure; it already succeeded.
func (c *Core) chainSyncThen(ctx context.Context, done chan error) {
	syncDone := make(chan error, 1)
	c.startSync(ctx, syncDone)
	go func() {
		<-syncDone
		done <- nil
		close(done)
	}()
}
