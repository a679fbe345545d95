// ABOUTME: Weekly roll-up over daily aggregates
// ABOUTME: Feeds the status --week view and the insight narration
package score

import (
	"github.com/harper/wellness-standalone/internal/models"
)

// WeeklySummary is a roll-up over a contiguous run of daily aggregates
type WeeklySummary struct {
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Days            int     `json:"days"`
	ActiveDays      int     `json:"active_days"`
	TotalWaterMl    int     `json:"total_water_ml"`
	TotalSteps      int     `json:"total_steps"`
	AvgSleepHours   float64 `json:"avg_sleep_hours"`
	AvgScore        float64 `json:"avg_score"`
	BestDay         string  `json:"best_day"`
	BestScore       int     `json:"best_score"`
	TargetsMetCount int     `json:"targets_met_count"`
}

// Summarize rolls up a slice of aggregates, which should already be sorted by
// date. Zero-score days with no activity count toward Days but not ActiveDays.
func Summarize(aggs []*models.DailyAggregate) WeeklySummary {
	var s WeeklySummary
	if len(aggs) == 0 {
		return s
	}

	s.StartDate = aggs[0].Date
	s.EndDate = aggs[len(aggs)-1].Date
	s.Days = len(aggs)

	var sleepSum, scoreSum float64
	var sleepDays int
	for _, a := range aggs {
		s.TotalWaterMl += a.TotalWaterMl
		s.TotalSteps += a.TotalSteps
		if a.TotalWaterMl > 0 || a.TotalSteps > 0 || a.TotalSleepHours > 0 {
			s.ActiveDays++
		}
		if a.TotalSleepHours > 0 {
			sleepSum += a.TotalSleepHours
			sleepDays++
		}
		scoreSum += float64(a.WellnessScore)
		if a.WellnessScore >= s.BestScore && (s.BestDay == "" || a.WellnessScore > s.BestScore) {
			s.BestDay = a.Date
			s.BestScore = a.WellnessScore
		}
		if a.WellnessScore == 100 {
			s.TargetsMetCount++
		}
	}
	if sleepDays > 0 {
		s.AvgSleepHours = sleepSum / float64(sleepDays)
	}
	s.AvgScore = scoreSum / float64(len(aggs))
	return s
}
