// ABOUTME: Tests for the aggregation engine
// ABOUTME: Verifies determinism, component caps and score bounds
package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/wellness-standalone/internal/models"
)

func waterAt(t *testing.T, owner string, ml int, hour int) *models.WaterEvent {
	t.Helper()
	at := time.Date(2024, 1, 1, hour, 0, 0, 0, time.Local)
	ev, err := models.NewWaterEvent(owner, ml, at)
	require.NoError(t, err)
	return ev
}

func TestRecompute_WaterOnly(t *testing.T) {
	water := []*models.WaterEvent{
		waterAt(t, "u1", 250, 8),
		waterAt(t, "u1", 500, 12),
	}

	agg := Recompute("u1", "2024-01-01", water, nil, nil, models.DefaultGoals("u1"))

	assert.Equal(t, 750, agg.TotalWaterMl)
	assert.Equal(t, 0, agg.TotalSteps)
	assert.Equal(t, 0.0, agg.TotalSleepHours)
	// 30 * 750/2000 = 11.25, floored
	assert.Equal(t, 11, agg.WellnessScore)
}

func TestRecompute_AllTargetsMet(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	water, err := models.NewWaterEvent("u1", 2000, at)
	require.NoError(t, err)
	steps, err := models.NewStepEvent("u1", 10000, at)
	require.NoError(t, err)
	sleep, err := models.NewSleepEvent("u1", at.Add(-8*time.Hour), at, 0, 3, at)
	require.NoError(t, err)

	agg := Recompute("u1", "2024-01-01",
		[]*models.WaterEvent{water},
		[]*models.StepEvent{steps},
		[]*models.SleepEvent{sleep},
		models.DefaultGoals("u1"))

	assert.Equal(t, 100, agg.WellnessScore)
}

func TestRecompute_ComponentCap(t *testing.T) {
	// Massive step excess cannot offset a water/sleep deficit
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	steps, err := models.NewStepEvent("u1", 100000, at)
	require.NoError(t, err)

	agg := Recompute("u1", "2024-01-01", nil, []*models.StepEvent{steps}, nil, models.DefaultGoals("u1"))

	assert.Equal(t, 40, agg.WellnessScore)
}

func TestRecompute_SleepAverages(t *testing.T) {
	at := time.Date(2024, 1, 1, 7, 0, 0, 0, time.Local)
	night, err := models.NewSleepEvent("u1", at.Add(-8*time.Hour), at, 0, 4, at)
	require.NoError(t, err)
	nap, err := models.NewSleepEvent("u1", time.Time{}, time.Time{}, 2.0, 0, at.Add(7*time.Hour))
	require.NoError(t, err)

	agg := Recompute("u1", "2024-01-01", nil, nil, []*models.SleepEvent{night, nap}, models.DefaultGoals("u1"))

	// Sessions average: (8 + 2) / 2 = 5 hours
	assert.Equal(t, 5.0, agg.TotalSleepHours)
}

func TestRecompute_IgnoresOtherOwnersAndDays(t *testing.T) {
	otherDay := time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local)
	w2, err := models.NewWaterEvent("u1", 1000, otherDay)
	require.NoError(t, err)

	water := []*models.WaterEvent{
		waterAt(t, "u1", 250, 8),
		waterAt(t, "u2", 999, 9),
		w2,
	}

	agg := Recompute("u1", "2024-01-01", water, nil, nil, models.DefaultGoals("u1"))
	assert.Equal(t, 250, agg.TotalWaterMl)
}

func TestRecompute_Deterministic(t *testing.T) {
	water := []*models.WaterEvent{
		waterAt(t, "u1", 250, 8),
		waterAt(t, "u1", 500, 12),
		waterAt(t, "u1", 300, 18),
	}
	goals := models.DefaultGoals("u1")

	a := Recompute("u1", "2024-01-01", water, nil, nil, goals)
	// Reversed input order
	reversed := []*models.WaterEvent{water[2], water[1], water[0]}
	b := Recompute("u1", "2024-01-01", reversed, nil, nil, goals)

	assert.Equal(t, a.TotalWaterMl, b.TotalWaterMl)
	assert.Equal(t, a.WellnessScore, b.WellnessScore)
}

func TestScore_Bounds(t *testing.T) {
	goals := models.DefaultGoals("u1")
	cases := []struct {
		name  string
		agg   *models.DailyAggregate
		score int
	}{
		{"empty day", models.ZeroAggregate("u1", "2024-01-01"), 0},
		{"all excess", &models.DailyAggregate{TotalWaterMl: 10000, TotalSteps: 50000, TotalSleepHours: 20}, 100},
		{"half water", &models.DailyAggregate{TotalWaterMl: 1000}, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.agg, goals)
			assert.Equal(t, tc.score, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestSummarize(t *testing.T) {
	aggs := []*models.DailyAggregate{
		{Date: "2024-01-01", TotalWaterMl: 2000, TotalSteps: 10000, TotalSleepHours: 8, WellnessScore: 100},
		{Date: "2024-01-02"},
		{Date: "2024-01-03", TotalWaterMl: 500, TotalSteps: 4000, TotalSleepHours: 6, WellnessScore: 46},
	}

	s := Summarize(aggs)

	assert.Equal(t, "2024-01-01", s.StartDate)
	assert.Equal(t, "2024-01-03", s.EndDate)
	assert.Equal(t, 3, s.Days)
	assert.Equal(t, 2, s.ActiveDays)
	assert.Equal(t, 2500, s.TotalWaterMl)
	assert.Equal(t, 14000, s.TotalSteps)
	assert.Equal(t, 7.0, s.AvgSleepHours)
	assert.Equal(t, "2024-01-01", s.BestDay)
	assert.Equal(t, 100, s.BestScore)
	assert.Equal(t, 1, s.TargetsMetCount)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Days)
	assert.Equal(t, 0.0, s.AvgScore)
}
