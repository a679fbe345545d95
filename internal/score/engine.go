// ABOUTME: Pure aggregation engine for daily wellness totals and score
// ABOUTME: Deterministic and order-independent so re-sync can safely recompute
package score

import (
	"math"
	"time"

	"github.com/harper/wellness-standalone/internal/models"
)

// Component weights. Each component is capped independently, so excess in
// one metric never offsets a deficit in another.
const (
	stepWeight  = 40.0
	waterWeight = 30.0
	sleepWeight = 30.0
)

// Recompute derives the aggregate for (ownerID, date) from the raw events
// and goals. Events for other days or owners are ignored. Water and steps
// sum; sleep averages across sessions so naps don't inflate the score.
func Recompute(ownerID, date string, water []*models.WaterEvent, steps []*models.StepEvent, sleep []*models.SleepEvent, goals *models.Goals) *models.DailyAggregate {
	if goals == nil {
		goals = models.DefaultGoals(ownerID)
	}

	agg := models.ZeroAggregate(ownerID, date)

	for _, ev := range water {
		if ev.OwnerID == ownerID && ev.Date == date {
			agg.TotalWaterMl += ev.AmountMl
		}
	}
	for _, ev := range steps {
		if ev.OwnerID == ownerID && ev.Date == date {
			agg.TotalSteps += ev.Steps
		}
	}

	var sleepSum float64
	var sessions int
	for _, ev := range sleep {
		if ev.OwnerID == ownerID && ev.Date == date {
			sleepSum += ev.DurationHours
			sessions++
		}
	}
	if sessions > 0 {
		agg.TotalSleepHours = sleepSum / float64(sessions)
	}

	agg.WellnessScore = Score(agg, goals)

	now := time.Now()
	agg.CreatedAt = now
	agg.UpdatedAt = now
	return agg
}

// Score computes the composite 0-100 wellness score for an aggregate
func Score(agg *models.DailyAggregate, goals *models.Goals) int {
	steps := component(float64(agg.TotalSteps), float64(goals.DailyStepsTarget), stepWeight)
	water := component(float64(agg.TotalWaterMl), float64(goals.DailyWaterTargetMl), waterWeight)
	sleep := component(agg.TotalSleepHours, goals.DailySleepTargetHours, sleepWeight)

	score := int(math.Floor(steps + water + sleep))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func component(value, target, weight float64) float64 {
	if target <= 0 {
		return 0
	}
	c := weight * value / target
	if c > weight {
		return weight
	}
	return c
}
