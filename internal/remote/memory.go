// ABOUTME: In-memory remote store used by tests and offline demos
// ABOUTME: Supports forcing Unavailable/Unauthorized to exercise degrade paths
package remote

import (
	"encoding/json"
	"strings"
	"sync"
)

// MemoryStore is a Store backed by a map. ForceError makes every call fail
// with the given taxonomy error, simulating a dead or expired remote.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]byte
	forced  error

	// PutCount tracks total PutRecord calls, for idempotency assertions
	PutCount int
	puts     []string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

// ForceError makes subsequent calls fail with err; nil restores service
func (s *MemoryStore) ForceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = err
}

// Len returns the number of stored records
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Has reports whether a record exists at the path
func (s *MemoryStore) Has(ownerID, collection, recordID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[RecordPath(ownerID, collection, recordID)]
	return ok
}

func (s *MemoryStore) PutRecord(ownerID, collection, recordID string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return s.forced
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	path := RecordPath(ownerID, collection, recordID)
	s.records[path] = data
	s.PutCount++
	s.puts = append(s.puts, path)
	return nil
}

// PutPaths returns every PutRecord path in call order
func (s *MemoryStore) PutPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.puts...)
}

func (s *MemoryStore) GetRecord(ownerID, collection, recordID string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return s.forced
	}
	data, ok := s.records[RecordPath(ownerID, collection, recordID)]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func (s *MemoryStore) ListRecordIDs(ownerID, collection string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return nil, s.forced
	}
	prefix := CollectionPrefix(ownerID, collection)
	var ids []string
	for key := range s.records {
		if strings.HasPrefix(key, prefix) {
			ids = append(ids, strings.TrimPrefix(key, prefix))
		}
	}
	return ids, nil
}

func (s *MemoryStore) DeleteRecord(ownerID, collection, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return s.forced
	}
	delete(s.records, RecordPath(ownerID, collection, recordID))
	return nil
}

func (s *MemoryStore) PurgeOwner(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return s.forced
	}
	prefix := OwnerPrefix(ownerID)
	for key := range s.records {
		if strings.HasPrefix(key, prefix) {
			delete(s.records, key)
		}
	}
	return nil
}
