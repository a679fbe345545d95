// ABOUTME: Status command showing daily and weekly wellness aggregates
// ABOUTME: Days with no activity render as zero aggregates, never errors
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/wellness-standalone/internal/models"
	"github.com/harper/wellness-standalone/internal/score"
)

var statusWeek bool

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [date]",
		Short: "Show the daily aggregate and wellness score",
		Long: `Show the aggregate for a date (default: today), or the last seven
days with --week.

Examples:
  wellness status
  wellness status 2026-08-28
  wellness status --week`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			if statusWeek {
				return runWeekStatus(cmd, stack)
			}

			date, err := parseDateArg(args)
			if err != nil {
				return err
			}

			agg, err := stack.repo.GetAggregate(date)
			if err != nil {
				return err
			}

			printAggregate(cmd.OutOrStdout(), agg, mustGoals(stack))
			return nil
		},
	}

	cmd.Flags().BoolVar(&statusWeek, "week", false, "Show the last seven days")
	return cmd
}

func runWeekStatus(cmd *cobra.Command, stack *repoStack) error {
	now := time.Now()
	from := models.DateOf(now.AddDate(0, 0, -6))
	to := models.DateOf(now)

	aggs, err := stack.repo.GetAggregateRange(from, to)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, agg := range aggs {
		fmt.Fprintf(out, "%s  water %5d ml  steps %6d  sleep %4.1f h  score %3d\n",
			agg.Date, agg.TotalWaterMl, agg.TotalSteps, agg.TotalSleepHours, agg.WellnessScore)
	}

	summary := score.Summarize(aggs)
	fmt.Fprintf(out, "\nWeek of %s to %s\n", summary.StartDate, summary.EndDate)
	fmt.Fprintf(out, "  Active days: %d/%d\n", summary.ActiveDays, summary.Days)
	fmt.Fprintf(out, "  Totals: %d ml water, %d steps\n", summary.TotalWaterMl, summary.TotalSteps)
	fmt.Fprintf(out, "  Avg sleep: %.1f h   Avg score: %.0f\n", summary.AvgSleepHours, summary.AvgScore)
	if summary.BestDay != "" {
		fmt.Fprintf(out, "  Best day: %s (%d)\n", summary.BestDay, summary.BestScore)
	}
	return nil
}
