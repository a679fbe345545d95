// ABOUTME: Goals commands for viewing and updating wellness targets
// ABOUTME: Updated goals trigger a recompute of today's wellness score
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/wellness-standalone/internal/models"
)

var (
	goalSteps    int
	goalWaterMl  int
	goalSleep    float64
	goalExercise int
)

// NewGoalsCmd creates the goals command group
func NewGoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show or update wellness goals",
		Long: `Show the current goals, or update them with 'goals set'.

Defaults apply until goals are set: 10000 steps, 2000 ml water,
8 hours sleep, 150 minutes weekly exercise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			goals, err := stack.repo.GetGoals()
			if err != nil {
				return err
			}

			printGoals(cmd, goals)
			return nil
		},
	}

	cmd.AddCommand(newGoalsSetCmd())
	return cmd
}

func newGoalsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update one or more goal targets",
		Long: `Update goal targets. Omitted flags keep their current values.

Examples:
  wellness goals set --steps 12000
  wellness goals set --water 2500 --sleep 7.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			goals, err := stack.repo.GetGoals()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("steps") {
				goals.DailyStepsTarget = goalSteps
			}
			if cmd.Flags().Changed("water") {
				goals.DailyWaterTargetMl = goalWaterMl
			}
			if cmd.Flags().Changed("sleep") {
				goals.DailySleepTargetHours = goalSleep
			}
			if cmd.Flags().Changed("exercise") {
				goals.WeeklyExerciseMinutesTarget = goalExercise
			}

			if err := stack.repo.UpdateGoals(goals); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Goals updated")
			printGoals(cmd, goals)
			notePendingSync(cmd.OutOrStdout(), stack)

			// New targets change today's score; show it
			agg, err := stack.repo.GetAggregate(models.DateOf(time.Now()))
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Today's score is now %d/100\n", agg.WellnessScore)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&goalSteps, "steps", 0, "Daily step target")
	cmd.Flags().IntVar(&goalWaterMl, "water", 0, "Daily water target in milliliters")
	cmd.Flags().Float64Var(&goalSleep, "sleep", 0, "Daily sleep target in hours")
	cmd.Flags().IntVar(&goalExercise, "exercise", 0, "Weekly exercise minutes target")
	return cmd
}

func printGoals(cmd *cobra.Command, goals *models.Goals) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Steps:    %d / day\n", goals.DailyStepsTarget)
	fmt.Fprintf(out, "  Water:    %d ml / day\n", goals.DailyWaterTargetMl)
	fmt.Fprintf(out, "  Sleep:    %.1f h / day\n", goals.DailySleepTargetHours)
	fmt.Fprintf(out, "  Exercise: %d min / week\n", goals.WeeklyExerciseMinutesTarget)
}
