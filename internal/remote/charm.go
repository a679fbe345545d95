// ABOUTME: Charm KV client implementing the remote store contract
// ABOUTME: JSON values under owner-scoped keys with automatic SSH key auth
package remote

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
)

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// DefaultConfig returns default configuration for the charm client
func DefaultConfig() *Config {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = "cloud.charm.sh"
	}
	return &Config{
		Host:     host,
		DBName:   "wellness",
		AutoSync: true,
	}
}

// CharmStore implements Store over charm cloud KV
type CharmStore struct {
	kv     *kv.KV
	config *Config
	mu     sync.Mutex
}

// NewCharmStore opens the charm KV database. Connection problems surface
// as ErrUnavailable so callers can degrade immediately.
func NewCharmStore(cfg *Config) (*CharmStore, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Set CHARM_HOST before opening KV
	os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to open charm kv: %w", err))
	}

	s := &CharmStore{
		kv:     db,
		config: cfg,
	}

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return s, nil
}

// Close closes the KV database
func (s *CharmStore) Close() error {
	if s.kv != nil {
		err := s.kv.Close()
		s.kv = nil
		return err
	}
	return nil
}

// ID returns the charm user ID for the linked account
func (s *CharmStore) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", classify(fmt.Errorf("failed to create charm client: %w", err))
	}
	id, err := cc.ID()
	if err != nil {
		return "", classify(err)
	}
	return id, nil
}

// PutRecord stores value as JSON at owners/{ownerId}/{collection}/{recordId}
func (s *CharmStore) PutRecord(ownerID, collection, recordID string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := RecordPath(ownerID, collection, recordID)
	if err := s.kv.Set([]byte(key), data); err != nil {
		return classify(fmt.Errorf("failed to set key %s: %w", key, err))
	}
	s.syncIfEnabled()
	return nil
}

// GetRecord retrieves and unmarshals a JSON record
func (s *CharmStore) GetRecord(ownerID, collection, recordID string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := RecordPath(ownerID, collection, recordID)
	data, err := s.kv.Get([]byte(key))
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return classify(err)
	}
	if len(data) == 0 {
		return ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

// ListRecordIDs returns all record IDs under the owner's collection prefix
func (s *CharmStore) ListRecordIDs(ownerID, collection string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.kv.Keys()
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list keys: %w", err))
	}

	prefix := CollectionPrefix(ownerID, collection)
	var ids []string
	for _, key := range keys {
		keyStr := string(key)
		if strings.HasPrefix(keyStr, prefix) {
			ids = append(ids, strings.TrimPrefix(keyStr, prefix))
		}
	}
	return ids, nil
}

// DeleteRecord removes a single record
func (s *CharmStore) DeleteRecord(ownerID, collection, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := RecordPath(ownerID, collection, recordID)
	if err := s.kv.Delete([]byte(key)); err != nil {
		return classify(fmt.Errorf("failed to delete key %s: %w", key, err))
	}
	s.syncIfEnabled()
	return nil
}

// PurgeOwner removes every key under owners/{ownerId}/
func (s *CharmStore) PurgeOwner(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.kv.Keys()
	if err != nil {
		return classify(fmt.Errorf("failed to list keys: %w", err))
	}

	prefix := OwnerPrefix(ownerID)
	for _, key := range keys {
		if strings.HasPrefix(string(key), prefix) {
			if err := s.kv.Delete(key); err != nil {
				return classify(fmt.Errorf("failed to delete key %s: %w", key, err))
			}
		}
	}
	s.syncIfEnabled()
	return nil
}

// Sync manually triggers a sync with the cloud
func (s *CharmStore) Sync() error {
	if err := s.kv.Sync(); err != nil {
		return classify(err)
	}
	return nil
}

// syncIfEnabled syncs to cloud after writes
func (s *CharmStore) syncIfEnabled() {
	if s.config.AutoSync {
		_ = s.kv.Sync()
	}
}

// classify maps transport errors onto the degrade taxonomy
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "auth") || strings.Contains(msg, "denied") || strings.Contains(msg, "forbidden") {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not found")
}
