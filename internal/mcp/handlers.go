// ABOUTME: MCP tool handler implementations for the wellness server
// ABOUTME: Thin adapters between MCP tool calls and the repository API
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/wellness-standalone/internal/models"
	"github.com/harper/wellness-standalone/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	repo *repo.Repository
}

// LogWater handles the log_water tool
func (h *Handlers) LogWater(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amountMl, err := request.RequireFloat("amount_ml")
	if err != nil {
		return mcp.NewToolResultError("amount_ml argument is required and must be a number"), nil
	}

	at, err := parseOccurredAt(request.GetString("occurred_at", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	agg, err := h.repo.RecordWater(int(amountMl), at)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record water: %v", err)), nil
	}

	return aggregateResult(agg, h.repo.LastRemoteStatus())
}

// LogSteps handles the log_steps tool
func (h *Handlers) LogSteps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	steps, err := request.RequireFloat("steps")
	if err != nil {
		return mcp.NewToolResultError("steps argument is required and must be a number"), nil
	}

	at, err := parseOccurredAt(request.GetString("occurred_at", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	agg, err := h.repo.RecordSteps(int(steps), at)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record steps: %v", err)), nil
	}

	return aggregateResult(agg, h.repo.LastRemoteStatus())
}

// LogSleep handles the log_sleep tool
func (h *Handlers) LogSleep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startStr := request.GetString("start", "")
	endStr := request.GetString("end", "")
	durationHours := request.GetFloat("duration_hours", 0)
	quality := request.GetInt("quality", 0)

	var start, end time.Time
	var err error
	if startStr != "" {
		start, err = time.Parse(time.RFC3339, startStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("start must be RFC3339: %v", err)), nil
		}
	}
	if endStr != "" {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("end must be RFC3339: %v", err)), nil
		}
	}

	if start.IsZero() && durationHours <= 0 {
		return mcp.NewToolResultError("provide either start/end times or a positive duration_hours"), nil
	}

	at := end
	if at.IsZero() {
		at = time.Now()
	}

	agg, err := h.repo.RecordSleep(start, end, durationHours, quality, at)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record sleep: %v", err)), nil
	}

	return aggregateResult(agg, h.repo.LastRemoteStatus())
}

// GetAggregate handles the get_aggregate tool
func (h *Handlers) GetAggregate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := request.GetString("date", "")
	if date == "" {
		date = models.DateOf(time.Now())
	}

	agg, err := h.repo.GetAggregate(date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get aggregate: %v", err)), nil
	}

	return jsonResult(agg)
}

// GetGoals handles the get_goals tool
func (h *Handlers) GetGoals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goals, err := h.repo.GetGoals()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get goals: %v", err)), nil
	}

	return jsonResult(goals)
}

// SetGoals handles the set_goals tool. Omitted fields keep their current values.
func (h *Handlers) SetGoals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goals, err := h.repo.GetGoals()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load current goals: %v", err)), nil
	}

	if v := request.GetInt("daily_steps_target", 0); v != 0 {
		goals.DailyStepsTarget = v
	}
	if v := request.GetInt("daily_water_target_ml", 0); v != 0 {
		goals.DailyWaterTargetMl = v
	}
	if v := request.GetFloat("daily_sleep_target_hours", 0); v != 0 {
		goals.DailySleepTargetHours = v
	}
	if v := request.GetInt("weekly_exercise_minutes_target", 0); v != 0 {
		goals.WeeklyExerciseMinutesTarget = v
	}

	if err := h.repo.UpdateGoals(goals); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update goals: %v", err)), nil
	}

	return jsonResult(goals)
}

// SyncNow handles the sync_now tool
func (h *Handlers) SyncNow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.repo.SyncLocalToRemote(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sync failed: %v", err)), nil
	}

	return mcp.NewToolResultText(`{"status":"synced"}`), nil
}

// parseOccurredAt parses an optional RFC3339 timestamp, defaulting to now.
func parseOccurredAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("occurred_at must be RFC3339: %v", err)
	}
	return t, nil
}

// aggregateResult renders the recomputed aggregate, flagging records that are
// still waiting to reach the remote store.
func aggregateResult(agg *models.DailyAggregate, remoteErr error) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"aggregate": agg,
	}
	if remoteErr != nil {
		response["pending_sync"] = true
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
