// ABOUTME: Store stand-in used when the charm backend cannot be opened
// ABOUTME: Every call fails with ErrUnavailable so writes stay pending locally
package remote

// UnavailableStore satisfies Store while the real backend is unreachable.
// Callers degrade the same way they would for a mid-flight outage.
type UnavailableStore struct{}

// NewUnavailableStore returns a Store that always reports ErrUnavailable
func NewUnavailableStore() *UnavailableStore {
	return &UnavailableStore{}
}

func (s *UnavailableStore) PutRecord(ownerID, collection, recordID string, value interface{}) error {
	return ErrUnavailable
}

func (s *UnavailableStore) GetRecord(ownerID, collection, recordID string, dest interface{}) error {
	return ErrUnavailable
}

func (s *UnavailableStore) ListRecordIDs(ownerID, collection string) ([]string, error) {
	return nil, ErrUnavailable
}

func (s *UnavailableStore) DeleteRecord(ownerID, collection, recordID string) error {
	return ErrUnavailable
}

func (s *UnavailableStore) PurgeOwner(ownerID string) error {
	return ErrUnavailable
}
