// ABOUTME: Repository facade orchestrating dual-writes, reads and recomputation
// ABOUTME: Remote is best-effort, cache is mandatory; every write recomputes the day
package repo

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/harper/wellness-standalone/internal/models"
	"github.com/harper/wellness-standalone/internal/remote"
	"github.com/harper/wellness-standalone/internal/score"
	"github.com/harper/wellness-standalone/internal/session"
	"github.com/harper/wellness-standalone/internal/storage/sqlite"
)

// PersistenceError wraps a local cache failure. The cache has no further
// fallback, so these are fatal for the call that hit them.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Repository is the facade all callers use. Writes go remote-first
// (best-effort) then cache (always); reads prefer remote and degrade to
// cache; every mutating call recomputes the day's aggregate.
type Repository struct {
	sessions *session.Manager
	remote   remote.Store
	notifier *Notifier

	// one lock per (owner, date) bucket so concurrent writes for the same
	// day cannot lose an aggregate update; raw appends don't need this,
	// the recompute does
	dateLocks sync.Map

	statusMu   sync.Mutex
	lastRemote error
}

// New wires a repository to the session manager and remote store, and
// installs itself as the manager's catch-up sync.
func New(sessions *session.Manager, rs remote.Store) *Repository {
	r := &Repository{
		sessions: sessions,
		remote:   rs,
		notifier: NewNotifier(),
	}
	sessions.SetSyncFunc(r.catchUpSync)
	return r
}

// Notifier exposes the aggregate-changed stream for downstream consumers
func (r *Repository) Notifier() *Notifier {
	return r.notifier
}

// LastRemoteStatus returns the outcome of the most recent remote call:
// nil when healthy, ErrUnavailable/ErrUnauthorized when degraded. An
// Unauthorized status means the session needs re-auth.
func (r *Repository) LastRemoteStatus() error {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	return r.lastRemote
}

func (r *Repository) noteRemote(err error) {
	r.statusMu.Lock()
	r.lastRemote = err
	r.statusMu.Unlock()
}

// RecordWater logs a water intake for the active owner and returns the
// recomputed aggregate for the event's day.
func (r *Repository) RecordWater(amountMl int, at time.Time) (*models.DailyAggregate, error) {
	db, ownerID, err := r.active()
	if err != nil {
		return nil, err
	}

	ev, err := models.NewWaterEvent(ownerID, amountMl, at)
	if err != nil {
		return nil, err
	}

	unlock := r.lockDate(ownerID, ev.Date)
	defer unlock()

	pending := !r.tryRemotePut(ownerID, remote.CollectionWater, ev.ID, ev)
	if err := sqlite.NewWaterStore(db).Save(ev, pending); err != nil {
		return nil, &PersistenceError{Op: "RecordWater", Err: err}
	}

	return r.recomputeLocked(db, ownerID, ev.Date)
}

// RecordSteps logs a step count for the active owner
func (r *Repository) RecordSteps(steps int, at time.Time) (*models.DailyAggregate, error) {
	db, ownerID, err := r.active()
	if err != nil {
		return nil, err
	}

	ev, err := models.NewStepEvent(ownerID, steps, at)
	if err != nil {
		return nil, err
	}

	unlock := r.lockDate(ownerID, ev.Date)
	defer unlock()

	pending := !r.tryRemotePut(ownerID, remote.CollectionSteps, ev.ID, ev)
	if err := sqlite.NewStepStore(db).Save(ev, pending); err != nil {
		return nil, &PersistenceError{Op: "RecordSteps", Err: err}
	}

	return r.recomputeLocked(db, ownerID, ev.Date)
}

// RecordSleep logs a sleep session for the active owner. durationHours may
// be zero when start/end are supplied; quality 0 means unrated.
func (r *Repository) RecordSleep(start, end time.Time, durationHours float64, quality int, at time.Time) (*models.DailyAggregate, error) {
	db, ownerID, err := r.active()
	if err != nil {
		return nil, err
	}

	ev, err := models.NewSleepEvent(ownerID, start, end, durationHours, quality, at)
	if err != nil {
		return nil, err
	}

	unlock := r.lockDate(ownerID, ev.Date)
	defer unlock()

	pending := !r.tryRemotePut(ownerID, remote.CollectionSleep, ev.ID, ev)
	if err := sqlite.NewSleepStore(db).Save(ev, pending); err != nil {
		return nil, &PersistenceError{Op: "RecordSleep", Err: err}
	}

	return r.recomputeLocked(db, ownerID, ev.Date)
}

// GetAggregate returns the aggregate for a date. Remote is preferred, cache
// is the fallback, and a day with no data yields a zero-valued aggregate,
// never an error.
func (r *Repository) GetAggregate(date string) (*models.DailyAggregate, error) {
	db, ownerID, err := r.active()
	if err != nil {
		return nil, err
	}
	if err := models.ValidateDate(date); err != nil {
		return nil, err
	}

	var agg models.DailyAggregate
	rerr := r.remote.GetRecord(ownerID, remote.CollectionAggregates, date, &agg)
	switch {
	case rerr == nil:
		r.noteRemote(nil)
		return &agg, nil
	case errors.Is(rerr, remote.ErrNotFound):
		r.noteRemote(nil)
	default:
		r.noteRemote(rerr)
		log.Printf("remote read degraded to cache: %v", rerr)
	}

	cached, err := sqlite.NewAggregateStore(db).GetByDate(ownerID, date)
	if err != nil {
		return nil, &PersistenceError{Op: "GetAggregate", Err: err}
	}
	if cached != nil {
		return cached, nil
	}
	return models.ZeroAggregate(ownerID, date), nil
}

// GetAggregateRange returns cached aggregates for each day in [from, to],
// filling days with no row with zero-valued aggregates. Serves the weekly
// views without a remote round-trip per day.
func (r *Repository) GetAggregateRange(from, to string) ([]*models.DailyAggregate, error) {
	db, ownerID, err := r.active()
	if err != nil {
		return nil, err
	}
	if err := models.ValidateDate(from); err != nil {
		return nil, err
	}
	if err := models.ValidateDate(to); err != nil {
		return nil, err
	}

	rows, err := sqlite.NewAggregateStore(db).ListByDateRange(ownerID, from, to)
	if err != nil {
		return nil, &PersistenceError{Op: "GetAggregateRange", Err: err}
	}
	byDate := make(map[string]*models.DailyAggregate, len(rows))
	for _, a := range rows {
		byDate[a.Date] = a
	}

	start, _ := time.Parse(models.DateLayout, from)
	finish, _ := time.Parse(models.DateLayout, to)
	var out []*models.DailyAggregate
	for d := start; !d.After(finish); d = d.AddDate(0, 0, 1) {
		date := d.Format(models.DateLayout)
		if a, ok := byDate[date]; ok {
			out = append(out, a)
		} else {
			out = append(out, models.ZeroAggregate(ownerID, date))
		}
	}
	return out, nil
}

// GetGoals returns the owner's goals, remote-preferred, defaults when no
// store has a row.
func (r *Repository) GetGoals() (*models.Goals, error) {
	db, ownerID, err := r.active()
	if err != nil {
		return nil, err
	}

	var g models.Goals
	rerr := r.remote.GetRecord(ownerID, remote.CollectionGoals, ownerID, &g)
	switch {
	case rerr == nil:
		r.noteRemote(nil)
		return &g, nil
	case errors.Is(rerr, remote.ErrNotFound):
		r.noteRemote(nil)
	default:
		r.noteRemote(rerr)
		log.Printf("remote read degraded to cache: %v", rerr)
	}

	cached, err := sqlite.NewGoalsStore(db).Get(ownerID)
	if err != nil {
		return nil, &PersistenceError{Op: "GetGoals", Err: err}
	}
	if cached != nil {
		return cached, nil
	}
	return models.DefaultGoals(ownerID), nil
}

// UpdateGoals validates and writes new targets, remote best-effort, cache
// always. The owner key always comes from the active session.
func (r *Repository) UpdateGoals(g *models.Goals) error {
	db, ownerID, err := r.active()
	if err != nil {
		return err
	}
	g.OwnerID = ownerID
	if err := g.Validate(); err != nil {
		return err
	}

	pending := !r.tryRemotePut(ownerID, remote.CollectionGoals, ownerID, g)
	if err := sqlite.NewGoalsStore(db).Upsert(g, pending); err != nil {
		return &PersistenceError{Op: "UpdateGoals", Err: err}
	}

	// New targets reprice today's score immediately
	today := models.DateOf(time.Now())
	unlock := r.lockDate(ownerID, today)
	defer unlock()
	if _, err := r.recomputeLocked(db, ownerID, today); err != nil {
		return err
	}
	return nil
}

// ResetAllData deletes all four entity families for the current owner from
// the local cache only. Remote data stays intact; use PurgeRemote for the
// separate, explicit cloud deletion.
func (r *Repository) ResetAllData() error {
	db, ownerID, err := r.active()
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func(string) error
	}{
		{"water", sqlite.NewWaterStore(db).DeleteAllForOwner},
		{"steps", sqlite.NewStepStore(db).DeleteAllForOwner},
		{"sleep", sqlite.NewSleepStore(db).DeleteAllForOwner},
		{"aggregates", sqlite.NewAggregateStore(db).DeleteAllForOwner},
		{"goals", sqlite.NewGoalsStore(db).DeleteAllForOwner},
	}
	for _, s := range steps {
		if err := s.fn(ownerID); err != nil {
			return &PersistenceError{Op: "ResetAllData/" + s.name, Err: err}
		}
	}
	return nil
}

// PurgeRemote deletes everything the current owner stores remotely. This is
// the rare account-deletion path, never triggered by a local reset.
func (r *Repository) PurgeRemote() error {
	_, ownerID, err := r.active()
	if err != nil {
		return err
	}
	if err := r.remote.PurgeOwner(ownerID); err != nil {
		r.noteRemote(err)
		return err
	}
	r.noteRemote(nil)
	return nil
}

// active returns the open cache handle and owner, or ErrNoSession
func (r *Repository) active() (*sqlite.DB, string, error) {
	db, err := r.sessions.DB()
	if err != nil {
		return nil, "", err
	}
	return db, r.sessions.OwnerID(), nil
}

// tryRemotePut attempts the best-effort remote write. It returns true on
// success; failures are logged and left for the pending sweep, so writes
// never block on the network.
func (r *Repository) tryRemotePut(ownerID, collection, recordID string, value interface{}) bool {
	err := r.remote.PutRecord(ownerID, collection, recordID, value)
	r.noteRemote(err)
	if err == nil {
		return true
	}
	if errors.Is(err, remote.ErrUnauthorized) {
		log.Printf("remote write unauthorized, marked pending (re-auth needed): %s/%s", collection, recordID)
	} else {
		log.Printf("remote write failed, marked pending: %s/%s: %v", collection, recordID, err)
	}
	return false
}

// lockDate serializes aggregate recomputation per (owner, date)
func (r *Repository) lockDate(ownerID, date string) func() {
	key := ownerID + "|" + date
	actual, _ := r.dateLocks.LoadOrStore(key, &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// recomputeLocked rebuilds the day's aggregate from raw events, upserts it
// to both stores and notifies observers. Callers must hold the date lock.
func (r *Repository) recomputeLocked(db *sqlite.DB, ownerID, date string) (*models.DailyAggregate, error) {
	water, err := sqlite.NewWaterStore(db).ListByDate(ownerID, date)
	if err != nil {
		return nil, &PersistenceError{Op: "recompute/water", Err: err}
	}
	steps, err := sqlite.NewStepStore(db).ListByDate(ownerID, date)
	if err != nil {
		return nil, &PersistenceError{Op: "recompute/steps", Err: err}
	}
	sleep, err := sqlite.NewSleepStore(db).ListByDate(ownerID, date)
	if err != nil {
		return nil, &PersistenceError{Op: "recompute/sleep", Err: err}
	}

	goals, err := sqlite.NewGoalsStore(db).Get(ownerID)
	if err != nil {
		return nil, &PersistenceError{Op: "recompute/goals", Err: err}
	}
	if goals == nil {
		goals = models.DefaultGoals(ownerID)
	}

	agg := score.Recompute(ownerID, date, water, steps, sleep, goals)

	pending := !r.tryRemotePut(ownerID, remote.CollectionAggregates, date, agg)
	if err := sqlite.NewAggregateStore(db).Upsert(agg, pending); err != nil {
		return nil, &PersistenceError{Op: "recompute/upsert", Err: err}
	}

	r.notifier.Publish(agg)
	return agg, nil
}
