// ABOUTME: Insight command narrating the last week of wellness numbers
// ABOUTME: Uses OpenAI when a key is configured, plain numbers otherwise
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/wellness-standalone/internal/llm"
	"github.com/harper/wellness-standalone/internal/models"
	"github.com/harper/wellness-standalone/internal/score"
)

// NewInsightCmd creates the insight command
func NewInsightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insight",
		Short: "Summarize the last week in plain language",
		Long: `Summarize the last seven days of wellness data.

With OPENAI_API_KEY set, a short coach-style narration is generated.
Without it, the numeric weekly summary is shown instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := openStack()
			if err != nil {
				return err
			}
			defer stack.Close()

			now := time.Now()
			from := models.DateOf(now.AddDate(0, 0, -6))
			to := models.DateOf(now)

			aggs, err := stack.repo.GetAggregateRange(from, to)
			if err != nil {
				return err
			}
			goals, err := stack.repo.GetGoals()
			if err != nil {
				return err
			}

			summary := score.Summarize(aggs)
			out := cmd.OutOrStdout()

			if stack.cfg.OpenAIKey == "" {
				fmt.Fprintln(out, "No OPENAI_API_KEY set; showing the numbers instead:")
				fmt.Fprintf(out, "  %d active days of %d, %d ml water, %d steps\n",
					summary.ActiveDays, summary.Days, summary.TotalWaterMl, summary.TotalSteps)
				fmt.Fprintf(out, "  avg sleep %.1f h, avg score %.0f\n", summary.AvgSleepHours, summary.AvgScore)
				return nil
			}

			client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
				APIKey:     stack.cfg.OpenAIKey,
				ChatModel:  stack.cfg.ChatModel,
				Timeout:    stack.cfg.Timeout,
				MaxRetries: stack.cfg.MaxRetries,
				RetryDelay: stack.cfg.RetryDelay,
			})
			if err != nil {
				return err
			}

			text, err := client.NarrateWeek(&summary, aggs, goals)
			if err != nil {
				return fmt.Errorf("insight generation failed: %w", err)
			}

			fmt.Fprintln(out, text)
			return nil
		},
	}
}
