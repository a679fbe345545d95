// ABOUTME: Main entry point for the wellness MCP server with stdio transport
// ABOUTME: Wires session manager, charm remote store, and repository into MCP tools
package main

import (
	"log"
	"os"

	"github.com/harper/wellness-standalone/internal/config"
	"github.com/harper/wellness-standalone/internal/mcp"
	"github.com/harper/wellness-standalone/internal/remote"
	"github.com/harper/wellness-standalone/internal/repo"
	"github.com/harper/wellness-standalone/internal/session"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for charm host overrides etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The remote store is best-effort: when charm is unreachable the
	// repository keeps writing to the local cache and marks rows pending.
	var remoteStore remote.Store
	charmStore, err := remote.NewCharmStore(&remote.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		log.Printf("Warning: remote store unavailable, running cache-only: %v", err)
		remoteStore = remote.NewUnavailableStore()
	} else {
		remoteStore = charmStore
		defer charmStore.Close()
	}

	sessions := session.NewManager()
	defer sessions.Close()

	repository := repo.New(sessions, remoteStore)

	// Resolve the signed-in owner: explicit env override, the persisted
	// marker from `wellness login`, or the linked charm account.
	ownerID := os.Getenv("WELLNESS_OWNER")
	if ownerID == "" {
		ownerID, err = session.LoadCurrentOwner()
		if err != nil {
			log.Fatalf("Failed to load current owner: %v", err)
		}
	}
	if ownerID == "" {
		if charmStore != nil {
			ownerID, err = charmStore.ID()
			if err != nil {
				log.Fatalf("No owner signed in: set WELLNESS_OWNER, run `wellness login`, or link a charm account (%v)", err)
			}
		} else {
			log.Fatalf("No owner signed in: set WELLNESS_OWNER or run `wellness login`")
		}
	}

	if err := sessions.OnSessionChanged(ownerID); err != nil {
		log.Fatalf("Failed to start session for %s: %v", ownerID, err)
	}

	server := mcpserver.NewMCPServer(
		"Wellness Tracker",
		"0.1.0",
	)

	mcp.RegisterTools(server, repository)

	log.Printf("Wellness MCP server starting on stdio (owner=%s)...", ownerID)
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
