// ABOUTME: Catch-up sync sweeping pending cache rows to the remote store
// ABOUTME: Replays in original occurredAt order; idempotent and cancellable
package repo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harper/wellness-standalone/internal/remote"
	"github.com/harper/wellness-standalone/internal/storage/sqlite"
)

// pendingItem is one cache-only record awaiting its remote write
type pendingItem struct {
	occurredAt time.Time
	push       func() error
	markSynced func() error
}

// catchUpSync adapts the sweep to the session manager's SyncFunc signature
func (r *Repository) catchUpSync(ctx context.Context, ownerID string) error {
	return r.SyncLocalToRemote(ctx)
}

// SyncLocalToRemote pushes every cache-only record not yet confirmed remote.
// Events replay oldest-first across all three collections, then aggregates,
// then goals. Remote writes are idempotent upserts keyed by record ID, so a
// sweep interrupted by sign-out or failure is safe to rerun. The first
// remote failure aborts the sweep; remaining rows stay pending for the
// next login or manual retry.
func (r *Repository) SyncLocalToRemote(ctx context.Context) error {
	db, ownerID, err := r.active()
	if err != nil {
		return err
	}

	items, err := r.collectPendingEvents(db, ownerID)
	if err != nil {
		return err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].occurredAt.Before(items[j].occurredAt)
	})

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := item.push(); err != nil {
			r.noteRemote(err)
			return fmt.Errorf("sync aborted, records stay pending: %w", err)
		}
		if err := item.markSynced(); err != nil {
			return &PersistenceError{Op: "SyncLocalToRemote/mark", Err: err}
		}
	}

	if err := r.syncPendingAggregates(ctx, db, ownerID); err != nil {
		return err
	}
	if err := r.syncPendingGoals(ctx, db, ownerID); err != nil {
		return err
	}

	r.noteRemote(nil)
	return nil
}

// PendingCounts reports how many cache rows still await their remote write
func (r *Repository) PendingCounts() (events int, aggregates int, goalsPending bool, err error) {
	db, ownerID, err := r.active()
	if err != nil {
		return 0, 0, false, err
	}

	items, err := r.collectPendingEvents(db, ownerID)
	if err != nil {
		return 0, 0, false, err
	}
	events = len(items)

	dates, err := sqlite.NewAggregateStore(db).ListPendingDates(ownerID)
	if err != nil {
		return 0, 0, false, &PersistenceError{Op: "PendingCounts/aggregates", Err: err}
	}
	aggregates = len(dates)

	goalsPending, err = sqlite.NewGoalsStore(db).IsPending(ownerID)
	if err != nil {
		return 0, 0, false, &PersistenceError{Op: "PendingCounts/goals", Err: err}
	}
	return events, aggregates, goalsPending, nil
}

func (r *Repository) collectPendingEvents(db *sqlite.DB, ownerID string) ([]pendingItem, error) {
	var items []pendingItem

	waterStore := sqlite.NewWaterStore(db)
	water, err := waterStore.ListPending(ownerID)
	if err != nil {
		return nil, &PersistenceError{Op: "SyncLocalToRemote/water", Err: err}
	}
	for _, ev := range water {
		ev := ev
		items = append(items, pendingItem{
			occurredAt: ev.OccurredAt,
			push: func() error {
				return r.remote.PutRecord(ownerID, remote.CollectionWater, ev.ID, ev)
			},
			markSynced: func() error { return waterStore.MarkSynced(ev.ID) },
		})
	}

	stepStore := sqlite.NewStepStore(db)
	steps, err := stepStore.ListPending(ownerID)
	if err != nil {
		return nil, &PersistenceError{Op: "SyncLocalToRemote/steps", Err: err}
	}
	for _, ev := range steps {
		ev := ev
		items = append(items, pendingItem{
			occurredAt: ev.OccurredAt,
			push: func() error {
				return r.remote.PutRecord(ownerID, remote.CollectionSteps, ev.ID, ev)
			},
			markSynced: func() error { return stepStore.MarkSynced(ev.ID) },
		})
	}

	sleepStore := sqlite.NewSleepStore(db)
	sleep, err := sleepStore.ListPending(ownerID)
	if err != nil {
		return nil, &PersistenceError{Op: "SyncLocalToRemote/sleep", Err: err}
	}
	for _, ev := range sleep {
		ev := ev
		items = append(items, pendingItem{
			occurredAt: ev.OccurredAt,
			push: func() error {
				return r.remote.PutRecord(ownerID, remote.CollectionSleep, ev.ID, ev)
			},
			markSynced: func() error { return sleepStore.MarkSynced(ev.ID) },
		})
	}

	return items, nil
}

func (r *Repository) syncPendingAggregates(ctx context.Context, db *sqlite.DB, ownerID string) error {
	store := sqlite.NewAggregateStore(db)
	dates, err := store.ListPendingDates(ownerID)
	if err != nil {
		return &PersistenceError{Op: "SyncLocalToRemote/aggregates", Err: err}
	}
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return err
		}
		agg, err := store.GetByDate(ownerID, date)
		if err != nil {
			return &PersistenceError{Op: "SyncLocalToRemote/aggregates", Err: err}
		}
		if agg == nil {
			continue
		}
		if err := r.remote.PutRecord(ownerID, remote.CollectionAggregates, date, agg); err != nil {
			r.noteRemote(err)
			return fmt.Errorf("sync aborted, records stay pending: %w", err)
		}
		if err := store.MarkSynced(ownerID, date); err != nil {
			return &PersistenceError{Op: "SyncLocalToRemote/mark", Err: err}
		}
	}
	return nil
}

func (r *Repository) syncPendingGoals(ctx context.Context, db *sqlite.DB, ownerID string) error {
	store := sqlite.NewGoalsStore(db)
	pending, err := store.IsPending(ownerID)
	if err != nil {
		return &PersistenceError{Op: "SyncLocalToRemote/goals", Err: err}
	}
	if !pending {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	g, err := store.Get(ownerID)
	if err != nil {
		return &PersistenceError{Op: "SyncLocalToRemote/goals", Err: err}
	}
	if g == nil {
		return nil
	}
	if err := r.remote.PutRecord(ownerID, remote.CollectionGoals, ownerID, g); err != nil {
		r.noteRemote(err)
		return fmt.Errorf("sync aborted, records stay pending: %w", err)
	}
	if err := store.MarkSynced(ownerID); err != nil {
		return &PersistenceError{Op: "SyncLocalToRemote/mark", Err: err}
	}
	return nil
}
