// ABOUTME: Persists the signed-in owner across process restarts
// ABOUTME: A plain text marker file next to the per-owner cache databases
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/wellness-standalone/internal/storage/sqlite"
)

const currentOwnerFile = "current_owner"

func currentOwnerPath() string {
	return filepath.Join(sqlite.DefaultDataDir(), currentOwnerFile)
}

// SaveCurrentOwner records ownerID so later invocations resume the session
func SaveCurrentOwner(ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("owner ID cannot be empty")
	}
	path := currentOwnerPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(ownerID+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to save current owner: %w", err)
	}
	return nil
}

// LoadCurrentOwner returns the persisted owner, or "" when signed out
func LoadCurrentOwner() (string, error) {
	data, err := os.ReadFile(currentOwnerPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read current owner: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ClearCurrentOwner removes the marker; missing is not an error
func ClearCurrentOwner() error {
	if err := os.Remove(currentOwnerPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear current owner: %w", err)
	}
	return nil
}
