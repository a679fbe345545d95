// ABOUTME: Shared wiring and formatting helpers for CLI commands
// ABOUTME: Opens the repository stack and renders aggregates consistently
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/joho/godotenv"

	"github.com/harper/wellness-standalone/internal/config"
	"github.com/harper/wellness-standalone/internal/models"
	"github.com/harper/wellness-standalone/internal/remote"
	"github.com/harper/wellness-standalone/internal/repo"
	"github.com/harper/wellness-standalone/internal/session"
)

// repoStack bundles the wired components a command needs
type repoStack struct {
	repo     *repo.Repository
	sessions *session.Manager
	charm    *remote.CharmStore
	cfg      *config.Config
}

// Close signs out and releases the remote store
func (s *repoStack) Close() {
	_ = s.sessions.Close()
	if s.charm != nil {
		_ = s.charm.Close()
	}
}

// openStack wires remote store, session manager, and repository, then signs
// in the persisted owner. Charm being unreachable is not fatal: the
// repository degrades to cache-only writes.
func openStack() (*repoStack, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	var remoteStore remote.Store
	charmStore, err := remote.NewCharmStore(&remote.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		remoteStore = remote.NewUnavailableStore()
		charmStore = nil
	} else {
		remoteStore = charmStore
	}

	sessions := session.NewManager()
	repository := repo.New(sessions, remoteStore)

	ownerID, err := session.LoadCurrentOwner()
	if err != nil {
		return nil, err
	}
	if ownerID == "" {
		if charmStore != nil {
			_ = charmStore.Close()
		}
		return nil, fmt.Errorf("not signed in: run 'wellness login <owner>' first")
	}

	if err := sessions.OnSessionChanged(ownerID); err != nil {
		if charmStore != nil {
			_ = charmStore.Close()
		}
		return nil, fmt.Errorf("starting session for %s: %w", ownerID, err)
	}

	return &repoStack{
		repo:     repository,
		sessions: sessions,
		charm:    charmStore,
		cfg:      cfg,
	}, nil
}

// printAggregate renders one daily aggregate against the goals
func printAggregate(w io.Writer, agg *models.DailyAggregate, goals *models.Goals) {
	fmt.Fprintf(w, "%s\n", agg.Date)
	fmt.Fprintf(w, "  Water: %d / %d ml\n", agg.TotalWaterMl, goals.DailyWaterTargetMl)
	fmt.Fprintf(w, "  Steps: %d / %d\n", agg.TotalSteps, goals.DailyStepsTarget)
	fmt.Fprintf(w, "  Sleep: %.1f / %.1f h\n", agg.TotalSleepHours, goals.DailySleepTargetHours)
	fmt.Fprintf(w, "  Score: %d/100\n", agg.WellnessScore)
}

// notePendingSync warns when the last remote write did not land
func notePendingSync(w io.Writer, stack *repoStack) {
	if err := stack.repo.LastRemoteStatus(); err != nil {
		fmt.Fprintf(w, "  (saved locally, will sync later: %v)\n", err)
	}
}

// parseDateArg resolves an optional YYYY-MM-DD positional arg to a date,
// defaulting to today
func parseDateArg(args []string) (string, error) {
	if len(args) == 0 {
		return models.DateOf(time.Now()), nil
	}
	if err := models.ValidateDate(args[0]); err != nil {
		return "", err
	}
	return args[0], nil
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
