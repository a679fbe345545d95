// ABOUTME: Log commands recording water, step, and sleep events
// ABOUTME: Each record recomputes the day's aggregate and prints it
package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/wellness-standalone/internal/models"
)

var (
	logAt        string
	sleepStart   string
	sleepEnd     string
	sleepHours   float64
	sleepQuality int
)

// NewLogCmd creates the log command group
func NewLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a wellness event",
		Long: `Record a water, step, or sleep event.

Records land in the local cache immediately and sync to the cloud in
the background. Logging works fully offline.

Examples:
  wellness log water 500
  wellness log steps 8000 --at 2026-08-30T09:15:00Z
  wellness log sleep --hours 7.5 --quality 4
  wellness log sleep --start 2026-08-29T23:00:00Z --end 2026-08-30T06:30:00Z`,
	}

	cmd.AddCommand(newLogWaterCmd())
	cmd.AddCommand(newLogStepsCmd())
	cmd.AddCommand(newLogSleepCmd())

	return cmd
}

func newLogWaterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "water <amount-ml>",
		Short: "Record water intake in milliliters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountMl, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("amount must be a whole number of milliliters: %w", err)
			}
			if err := validatePositiveInt(amountMl, "amount"); err != nil {
				return err
			}

			at, err := parseAtFlag()
			if err != nil {
				return err
			}

			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			agg, err := stack.repo.RecordWater(amountMl, at)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d ml water\n", amountMl)
			printAggregate(cmd.OutOrStdout(), agg, mustGoals(stack))
			notePendingSync(cmd.OutOrStdout(), stack)
			return nil
		},
	}

	cmd.Flags().StringVar(&logAt, "at", "", "When the event occurred, RFC3339 (default: now)")
	return cmd
}

func newLogStepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps <count>",
		Short: "Record a step count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("count must be a whole number of steps: %w", err)
			}
			if err := validatePositiveInt(steps, "count"); err != nil {
				return err
			}

			at, err := parseAtFlag()
			if err != nil {
				return err
			}

			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			agg, err := stack.repo.RecordSteps(steps, at)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d steps\n", steps)
			printAggregate(cmd.OutOrStdout(), agg, mustGoals(stack))
			notePendingSync(cmd.OutOrStdout(), stack)
			return nil
		},
	}

	cmd.Flags().StringVar(&logAt, "at", "", "When the event occurred, RFC3339 (default: now)")
	return cmd
}

func newLogSleepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Record a sleep session",
		Long: `Record a sleep session, either by start/end times or by duration.

Multiple sessions on one day (a night's sleep plus a nap) average into
the day's sleep figure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var start, end time.Time
			var err error
			if sleepStart != "" {
				start, err = time.Parse(time.RFC3339, sleepStart)
				if err != nil {
					return fmt.Errorf("--start must be RFC3339: %w", err)
				}
			}
			if sleepEnd != "" {
				end, err = time.Parse(time.RFC3339, sleepEnd)
				if err != nil {
					return fmt.Errorf("--end must be RFC3339: %w", err)
				}
			}
			if start.IsZero() && sleepHours <= 0 {
				return fmt.Errorf("provide --start/--end or a positive --hours")
			}

			at := end
			if at.IsZero() {
				at = time.Now()
			}

			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			agg, err := stack.repo.RecordSleep(start, end, sleepHours, sleepQuality, at)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged sleep session")
			printAggregate(cmd.OutOrStdout(), agg, mustGoals(stack))
			notePendingSync(cmd.OutOrStdout(), stack)
			return nil
		},
	}

	cmd.Flags().StringVar(&sleepStart, "start", "", "Sleep start time, RFC3339")
	cmd.Flags().StringVar(&sleepEnd, "end", "", "Sleep end time, RFC3339")
	cmd.Flags().Float64Var(&sleepHours, "hours", 0, "Sleep duration in hours (when start/end are omitted)")
	cmd.Flags().IntVar(&sleepQuality, "quality", 0, "Subjective quality rating, 0-5")
	return cmd
}

// parseAtFlag resolves the shared --at flag, defaulting to now
func parseAtFlag() (time.Time, error) {
	if logAt == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, logAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at must be RFC3339: %w", err)
	}
	return t, nil
}

// mustGoals fetches goals for display, falling back to defaults on error
func mustGoals(stack *repoStack) *models.Goals {
	g, err := stack.repo.GetGoals()
	if err != nil {
		return models.DefaultGoals(stack.sessions.OwnerID())
	}
	return g
}
