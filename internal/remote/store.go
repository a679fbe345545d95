// ABOUTME: Remote store contract and owner-scoped path scheme
// ABOUTME: Remote failures are non-fatal; callers degrade to cache-only
package remote

import (
	"errors"
	"fmt"
)

// Collections under each owner's namespace
const (
	CollectionWater      = "water_events"
	CollectionSteps      = "step_events"
	CollectionSleep      = "sleep_events"
	CollectionAggregates = "daily_aggregates"
	CollectionGoals      = "goals"
)

// Remote failure modes. Both degrade to cache-only operation; Unauthorized
// additionally signals the session needs re-auth.
var (
	ErrUnavailable  = errors.New("remote store unavailable")
	ErrUnauthorized = errors.New("remote session unauthorized")
	ErrNotFound     = errors.New("remote record not found")
)

// Store is the authoritative document store, addressed by
// owners/{ownerId}/{collection}/{recordId} paths. Implementations must
// never read or write outside the owner-scoped prefix.
type Store interface {
	// PutRecord stores value as JSON at the record path (idempotent upsert)
	PutRecord(ownerID, collection, recordID string, value interface{}) error
	// GetRecord unmarshals the record at the path into dest; ErrNotFound if absent
	GetRecord(ownerID, collection, recordID string, dest interface{}) error
	// ListRecordIDs returns all record IDs under owners/{ownerId}/{collection}/
	ListRecordIDs(ownerID, collection string) ([]string, error)
	// DeleteRecord removes a single record (no error if absent)
	DeleteRecord(ownerID, collection, recordID string) error
	// PurgeOwner removes everything under owners/{ownerId}/. Explicit and
	// rare (account deletion); never called by a local reset.
	PurgeOwner(ownerID string) error
}

// RecordPath builds the hierarchical key for a record
func RecordPath(ownerID, collection, recordID string) string {
	return fmt.Sprintf("owners/%s/%s/%s", ownerID, collection, recordID)
}

// OwnerPrefix is the key prefix holding everything an owner stores remotely
func OwnerPrefix(ownerID string) string {
	return fmt.Sprintf("owners/%s/", ownerID)
}

// CollectionPrefix is the key prefix for one collection of an owner
func CollectionPrefix(ownerID, collection string) string {
	return fmt.Sprintf("owners/%s/%s/", ownerID, collection)
}
