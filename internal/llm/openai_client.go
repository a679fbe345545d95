// ABOUTME: OpenAI client for narrating wellness insights from daily aggregates
// ABOUTME: Uses gpt-4o-mini chat completions with retry/backoff (configurable)
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harper/wellness-standalone/internal/models"
	"github.com/harper/wellness-standalone/internal/score"
	"github.com/harper/wellness-standalone/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the default model for chat completions
const DefaultChatModel = "gpt-4o-mini"

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey     string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	chatModel := os.Getenv("WELLNESS_OPENAI_MODEL")
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	return &ClientConfig{
		APIKey:     apiKey,
		ChatModel:  chatModel,
		Timeout:    time.Second * 30,
		MaxRetries: 3,
		RetryDelay: time.Second * 2,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client     *openai.Client
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIClient creates a new OpenAI client with the given API key using default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	client := openai.NewClient(config.APIKey)

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClient{
		client:     client,
		chatModel:  config.ChatModel,
		timeout:    timeout,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}, nil
}

// GetClient returns the underlying OpenAI client for direct use
func (c *OpenAIClient) GetClient() *openai.Client {
	return c.client
}

// NarrateWeek turns a weekly summary and its daily aggregates into a short
// natural-language insight. The model sees only numbers, never the owner ID.
func (c *OpenAIClient) NarrateWeek(summary *score.WeeklySummary, aggs []*models.DailyAggregate, goals *models.Goals) (string, error) {
	systemPrompt := `You are a friendly wellness coach. Given a week of daily wellness
numbers (steps, water in ml, sleep in hours, and a 0-100 score), write a short
insight: two or three sentences on what went well, one concrete suggestion.
Plain text only. Do not invent numbers that are not in the data.`

	userPrompt := buildWeekPrompt(summary, aggs, goals)

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: 0.5,
		})

		if err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			cancel()
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		cancel()
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}

	return "", fmt.Errorf("failed to narrate week after %d attempts: %w", c.maxRetries+1, lastErr)
}

// buildWeekPrompt renders the weekly numbers as plain text for the model.
func buildWeekPrompt(summary *score.WeeklySummary, aggs []*models.DailyAggregate, goals *models.Goals) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Goals: %d steps, %d ml water, %.1f hours sleep per day.\n\n", goals.DailyStepsTarget, goals.DailyWaterTargetMl, goals.DailySleepTargetHours)
	sb.WriteString("Daily numbers:\n")
	for _, agg := range aggs {
		fmt.Fprintf(&sb, "- %s: %d steps, %d ml water, %.1f h sleep, score %d\n",
			agg.Date, agg.TotalSteps, agg.TotalWaterMl, agg.TotalSleepHours, agg.WellnessScore)
	}

	fmt.Fprintf(&sb, "\nWeek totals: %d steps, %d ml water, average %.1f h sleep, average score %.0f.\n",
		summary.TotalSteps, summary.TotalWaterMl, summary.AvgSleepHours, summary.AvgScore)
	fmt.Fprintf(&sb, "Active days: %d of %d. Days all targets met: %d.\n", summary.ActiveDays, summary.Days, summary.TargetsMetCount)
	if summary.BestDay != "" {
		fmt.Fprintf(&sb, "Best day: %s.\n", summary.BestDay)
	}

	return sb.String()
}
