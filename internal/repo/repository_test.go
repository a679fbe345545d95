// ABOUTME: Tests for the repository facade
// ABOUTME: Covers dual-writes, degrade-to-cache, defaults, reset scope and locking
package repo

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/wellness-standalone/internal/models"
	"github.com/harper/wellness-standalone/internal/remote"
	"github.com/harper/wellness-standalone/internal/session"
)

func newTestRepo(t *testing.T, owner string) (*Repository, *remote.MemoryStore, *session.Manager) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	mgr := session.NewManager()
	rs := remote.NewMemoryStore()
	r := New(mgr, rs)

	if owner != "" {
		require.NoError(t, mgr.OnSessionChanged(owner))
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return r, rs, mgr
}

func TestRepository_NoSession(t *testing.T) {
	r, _, _ := newTestRepo(t, "")

	_, err := r.RecordWater(250, time.Now())
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, err = r.GetAggregate("2024-01-01")
	assert.ErrorIs(t, err, session.ErrNoSession)

	err = r.UpdateGoals(models.DefaultGoals("u1"))
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestRepository_RecordWater(t *testing.T) {
	r, rs, _ := newTestRepo(t, "u1")

	morning := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	noon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

	_, err := r.RecordWater(250, morning)
	require.NoError(t, err)
	agg, err := r.RecordWater(500, noon)
	require.NoError(t, err)

	assert.Equal(t, 750, agg.TotalWaterMl)
	// water component = 30 * 750/2000 = 11.25, floored alongside zero others
	assert.Equal(t, 11, agg.WellnessScore)

	got, err := r.GetAggregate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 750, got.TotalWaterMl)
	assert.Equal(t, 11, got.WellnessScore)

	// Both event and aggregate landed remotely
	assert.True(t, rs.Has("u1", remote.CollectionAggregates, "2024-01-01"))
	ids, err := rs.ListRecordIDs("u1", remote.CollectionWater)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestRepository_AllTargetsMet(t *testing.T) {
	r, _, _ := newTestRepo(t, "u1")

	at := time.Date(2024, 1, 1, 21, 0, 0, 0, time.Local)
	_, err := r.RecordWater(2000, at)
	require.NoError(t, err)
	_, err = r.RecordSteps(10000, at)
	require.NoError(t, err)
	agg, err := r.RecordSleep(at.Add(-8*time.Hour), at, 0, 4, at)
	require.NoError(t, err)

	assert.Equal(t, 100, agg.WellnessScore)
}

func TestRepository_ValidationRejectedBeforeIO(t *testing.T) {
	r, rs, _ := newTestRepo(t, "u1")

	_, err := r.RecordWater(0, time.Now())
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = r.RecordSteps(-5, time.Now())
	require.ErrorAs(t, err, &verr)

	assert.Equal(t, 0, rs.Len(), "no remote write for invalid input")
}

func TestRepository_OfflineDurability(t *testing.T) {
	r, rs, _ := newTestRepo(t, "u1")
	rs.ForceError(remote.ErrUnavailable)

	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	agg, err := r.RecordWater(500, at)
	require.NoError(t, err, "logging must succeed with the remote down")
	assert.Equal(t, 500, agg.TotalWaterMl)

	got, err := r.GetAggregate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 500, got.TotalWaterMl, "cache alone serves the read")

	assert.ErrorIs(t, r.LastRemoteStatus(), remote.ErrUnavailable)
}

func TestRepository_UnauthorizedDegradesToo(t *testing.T) {
	r, rs, _ := newTestRepo(t, "u1")
	rs.ForceError(remote.ErrUnauthorized)

	_, err := r.RecordSteps(4000, time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.ErrorIs(t, r.LastRemoteStatus(), remote.ErrUnauthorized)
}

func TestRepository_GetAggregate_ZeroDefault(t *testing.T) {
	r, _, _ := newTestRepo(t, "u1")

	agg, err := r.GetAggregate("2030-06-15")
	require.NoError(t, err, "a day with no data is valid, not an error")
	assert.Equal(t, "u1", agg.OwnerID)
	assert.Equal(t, "2030-06-15", agg.Date)
	assert.Equal(t, 0, agg.WellnessScore)

	_, err = r.GetAggregate("15/06/2030")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRepository_GetAggregate_PrefersRemote(t *testing.T) {
	r, rs, _ := newTestRepo(t, "u1")

	// Another device already pushed a richer aggregate for the day
	require.NoError(t, rs.PutRecord("u1", remote.CollectionAggregates, "2024-01-01",
		&models.DailyAggregate{OwnerID: "u1", Date: "2024-01-01", TotalSteps: 7500, WellnessScore: 30}))

	agg, err := r.GetAggregate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 7500, agg.TotalSteps)
}

func TestRepository_Goals(t *testing.T) {
	r, rs, _ := newTestRepo(t, "u1")

	g, err := r.GetGoals()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultStepsTarget, g.DailyStepsTarget, "defaults before any edit")

	g.DailyWaterTargetMl = 3000
	require.NoError(t, r.UpdateGoals(g))

	got, err := r.GetGoals()
	require.NoError(t, err)
	assert.Equal(t, 3000, got.DailyWaterTargetMl)
	assert.True(t, rs.Has("u1", remote.CollectionGoals, "u1"))

	bad := models.DefaultGoals("u1")
	bad.DailySleepTargetHours = -1
	var verr *models.ValidationError
	assert.ErrorAs(t, r.UpdateGoals(bad), &verr)
}

func TestRepository_ResetScope(t *testing.T) {
	r, rs, _ := newTestRepo(t, "u1")

	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	_, err := r.RecordWater(750, at)
	require.NoError(t, err)
	g, err := r.GetGoals()
	require.NoError(t, err)
	g.DailyStepsTarget = 12000
	require.NoError(t, r.UpdateGoals(g))

	remoteBefore := rs.Len()
	require.NoError(t, r.ResetAllData())

	// Remote history is intentionally untouched
	assert.Equal(t, remoteBefore, rs.Len())

	// Local cache is empty: with the remote down, everything reads as defaults
	rs.ForceError(remote.ErrUnavailable)
	agg, err := r.GetAggregate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, agg.TotalWaterMl)

	goals, err := r.GetGoals()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultStepsTarget, goals.DailyStepsTarget)
}

func TestRepository_PurgeRemote(t *testing.T) {
	r, rs, _ := newTestRepo(t, "u1")

	_, err := r.RecordWater(500, time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)
	require.NoError(t, rs.PutRecord("other", remote.CollectionWater, "w9", 1))

	require.NoError(t, r.PurgeRemote())

	ids, err := rs.ListRecordIDs("u1", remote.CollectionWater)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.True(t, rs.Has("other", remote.CollectionWater, "w9"), "purge is owner-scoped")
}

func TestRepository_GetAggregateRange(t *testing.T) {
	r, _, _ := newTestRepo(t, "u1")

	_, err := r.RecordWater(2000, time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)

	aggs, err := r.GetAggregateRange("2024-01-01", "2024-01-03")
	require.NoError(t, err)
	require.Len(t, aggs, 3)
	assert.Equal(t, 0, aggs[0].TotalWaterMl)
	assert.Equal(t, 2000, aggs[1].TotalWaterMl)
	assert.Equal(t, "2024-01-03", aggs[2].Date)
}

// Concurrent writes for the same day must not lose an aggregate update
func TestRepository_ConcurrentWritesSameDay(t *testing.T) {
	r, _, _ := newTestRepo(t, "u1")
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	const n = 8
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := r.RecordWater(100, at)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := r.RecordSteps(1000, at)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	agg, err := r.GetAggregate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, n*100, agg.TotalWaterMl)
	assert.Equal(t, n*1000, agg.TotalSteps)
}

func TestRepository_OwnerSwitchNeverLeaks(t *testing.T) {
	r, rs, mgr := newTestRepo(t, "u1")

	_, err := r.RecordWater(750, time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local))
	require.NoError(t, err)

	require.NoError(t, mgr.OnSessionChanged(""))
	require.NoError(t, mgr.OnSessionChanged("u2"))

	// Even with the remote healthy, u2 must never see u1's day
	agg, err := r.GetAggregate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "u2", agg.OwnerID)
	assert.Equal(t, 0, agg.TotalWaterMl)

	// And with the remote down, the cache can't leak either
	rs.ForceError(remote.ErrUnavailable)
	agg, err = r.GetAggregate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, agg.TotalWaterMl)
}

func TestRepository_GoalsChangeRepricesToday(t *testing.T) {
	r, _, _ := newTestRepo(t, "u1")

	_, err := r.RecordWater(1000, time.Now())
	require.NoError(t, err)

	today := models.DateOf(time.Now())
	agg, err := r.GetAggregate(today)
	require.NoError(t, err)
	// 1000 of 2000 ml fills half the 30-point water component
	assert.Equal(t, 15, agg.WellnessScore)

	g, err := r.GetGoals()
	require.NoError(t, err)
	g.DailyWaterTargetMl = 1000
	require.NoError(t, r.UpdateGoals(g))

	agg, err = r.GetAggregate(today)
	require.NoError(t, err)
	assert.Equal(t, 30, agg.WellnessScore)
}

func TestPersistenceError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := &PersistenceError{Op: "RecordWater", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "RecordWater")
}
