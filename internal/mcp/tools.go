// ABOUTME: MCP tool definitions and registration for the wellness server
// ABOUTME: Defines JSON schemas for all 7 tools exposed over stdio
package mcp

import (
	"github.com/harper/wellness-standalone/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, repository *repo.Repository) *Handlers {
	handlers := &Handlers{
		repo: repository,
	}

	// 1. log_water - Record a water intake event
	server.AddTool(mcp.Tool{
		Name:        "log_water",
		Description: "Record a water intake event for the signed-in user. The daily aggregate and wellness score are recomputed immediately.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"amount_ml": map[string]interface{}{
					"type":        "number",
					"description": "Amount of water in milliliters (must be positive)",
				},
				"occurred_at": map[string]interface{}{
					"type":        "string",
					"description": "When the water was drunk, RFC3339 (default: now)",
				},
			},
			Required: []string{"amount_ml"},
		},
	}, handlers.LogWater)

	// 2. log_steps - Record a step count event
	server.AddTool(mcp.Tool{
		Name:        "log_steps",
		Description: "Record a step count event for the signed-in user. The daily aggregate and wellness score are recomputed immediately.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"steps": map[string]interface{}{
					"type":        "number",
					"description": "Number of steps taken (must be positive)",
				},
				"occurred_at": map[string]interface{}{
					"type":        "string",
					"description": "When the steps were taken, RFC3339 (default: now)",
				},
			},
			Required: []string{"steps"},
		},
	}, handlers.LogSteps)

	// 3. log_sleep - Record a sleep session
	server.AddTool(mcp.Tool{
		Name:        "log_sleep",
		Description: "Record a sleep session for the signed-in user. Provide either start/end times or a duration in hours.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"start": map[string]interface{}{
					"type":        "string",
					"description": "Sleep start time, RFC3339",
				},
				"end": map[string]interface{}{
					"type":        "string",
					"description": "Sleep end time, RFC3339",
				},
				"duration_hours": map[string]interface{}{
					"type":        "number",
					"description": "Sleep duration in hours (used when start/end are omitted)",
				},
				"quality": map[string]interface{}{
					"type":        "number",
					"description": "Subjective sleep quality rating, 0-5 (default: 0 = unrated)",
				},
			},
		},
	}, handlers.LogSleep)

	// 4. get_aggregate - Fetch the daily aggregate for a date
	server.AddTool(mcp.Tool{
		Name:        "get_aggregate",
		Description: "Get the daily wellness aggregate (water, steps, sleep, score) for a date. Days with no activity return a zero aggregate.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Calendar date YYYY-MM-DD (default: today)",
				},
			},
		},
	}, handlers.GetAggregate)

	// 5. get_goals - Fetch the current goals
	server.AddTool(mcp.Tool{
		Name:        "get_goals",
		Description: "Get the signed-in user's wellness goals. Defaults apply when none were ever set.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetGoals)

	// 6. set_goals - Update goals
	server.AddTool(mcp.Tool{
		Name:        "set_goals",
		Description: "Update the signed-in user's wellness goals. Omitted fields keep their current values.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"daily_steps_target": map[string]interface{}{
					"type":        "number",
					"description": "Daily step target (must be positive)",
				},
				"daily_water_target_ml": map[string]interface{}{
					"type":        "number",
					"description": "Daily water target in milliliters (must be positive)",
				},
				"daily_sleep_target_hours": map[string]interface{}{
					"type":        "number",
					"description": "Daily sleep target in hours (must be positive)",
				},
				"weekly_exercise_minutes_target": map[string]interface{}{
					"type":        "number",
					"description": "Weekly exercise minutes target (must be positive)",
				},
			},
		},
	}, handlers.SetGoals)

	// 7. sync_now - Push pending records to the remote store
	server.AddTool(mcp.Tool{
		Name:        "sync_now",
		Description: "Push all locally pending records to the remote store in the order they occurred.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.SyncNow)

	return handlers
}
