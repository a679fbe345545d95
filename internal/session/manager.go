// ABOUTME: Session lifecycle state machine and sole owner of the cache handle
// ABOUTME: Anonymous -> Active(owner) -> Anonymous; owner switches pass through Anonymous
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/harper/wellness-standalone/internal/storage/sqlite"
)

// State of the session lifecycle
type State int

const (
	// Anonymous is the initial state; no owner, no open cache handle
	Anonymous State = iota
	// Active means one owner is signed in and its cache handle is open
	Active
	// Transitioning covers the window while handles are swapped
	Transitioning
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Active:
		return "active"
	case Transitioning:
		return "transitioning"
	}
	return "unknown"
}

var (
	// ErrNoSession is returned for operations that require an Active owner
	ErrNoSession = errors.New("no active session")
	// ErrSessionActive rejects a direct owner-to-owner switch
	ErrSessionActive = errors.New("another owner is signed in; sign out first")
)

// SyncFunc is the catch-up sync invoked after sign-in. It must honor ctx
// cancellation; partially synced records are safe to re-sync.
type SyncFunc func(ctx context.Context, ownerID string) error

// Manager reacts to the auth provider's session-change signal. It is the
// only component permitted to open or close the local cache handle, and it
// holds at most one open handle per process.
type Manager struct {
	mu      sync.Mutex
	state   State
	ownerID string
	db      *sqlite.DB

	syncFn     SyncFunc
	syncCancel context.CancelFunc
	syncDone   chan struct{}

	// openFn is swapped in tests to use in-memory databases
	openFn func(ownerID string) (*sqlite.DB, error)
}

// NewManager creates a manager in the Anonymous state
func NewManager() *Manager {
	return &Manager{
		state:  Anonymous,
		openFn: sqlite.OpenForOwner,
	}
}

// SetSyncFunc installs the catch-up sync run on each sign-in
func (m *Manager) SetSyncFunc(fn SyncFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncFn = fn
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// OwnerID returns the active owner, or "" when Anonymous
func (m *Manager) OwnerID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ownerID
}

// DB returns the open cache handle for the active owner
func (m *Manager) DB() (*sqlite.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Active || m.db == nil {
		return nil, ErrNoSession
	}
	return m.db, nil
}

// OnSessionChanged consumes the auth provider's signal. A non-empty owner
// signs in; empty signs out. Signing in over a different active owner is
// rejected: the caller must pass through sign-out first.
func (m *Manager) OnSessionChanged(ownerID string) error {
	if ownerID == "" {
		return m.signOut()
	}
	return m.signIn(ownerID)
}

func (m *Manager) signIn(ownerID string) error {
	m.mu.Lock()
	switch m.state {
	case Active:
		if m.ownerID == ownerID {
			m.mu.Unlock()
			return nil
		}
		m.mu.Unlock()
		return fmt.Errorf("%w (active=%s, requested=%s)", ErrSessionActive, m.ownerID, ownerID)
	case Transitioning:
		m.mu.Unlock()
		return fmt.Errorf("session is transitioning, retry")
	}
	m.state = Transitioning
	m.mu.Unlock()

	db, err := m.openFn(ownerID)
	if err != nil {
		m.mu.Lock()
		m.state = Anonymous
		m.mu.Unlock()
		return fmt.Errorf("failed to open cache for %s: %w", ownerID, err)
	}

	m.mu.Lock()
	m.db = db
	m.ownerID = ownerID
	m.state = Active
	fn := m.syncFn
	var ctx context.Context
	if fn != nil {
		ctx, m.syncCancel = context.WithCancel(context.Background())
		m.syncDone = make(chan struct{})
	}
	done := m.syncDone
	m.mu.Unlock()

	// One-shot catch-up sync. Failures are logged and retried on the next
	// login; they never block readiness.
	if fn != nil {
		go func() {
			defer close(done)
			if err := fn(ctx, ownerID); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("catch-up sync for %s failed (will retry next login): %v", ownerID, err)
			}
		}()
	}

	return nil
}

func (m *Manager) signOut() error {
	m.mu.Lock()
	if m.state == Anonymous {
		m.mu.Unlock()
		return nil
	}
	m.state = Transitioning
	cancel := m.syncCancel
	done := m.syncDone
	m.syncCancel = nil
	m.syncDone = nil
	m.mu.Unlock()

	// Stop any in-flight catch-up sync before the handle goes away
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.db != nil {
		err = m.db.Close()
		m.db = nil
	}
	m.ownerID = ""
	m.state = Anonymous
	if err != nil {
		return fmt.Errorf("failed to close cache handle: %w", err)
	}
	return nil
}

// Close signs out if needed; used on process shutdown
func (m *Manager) Close() error {
	return m.signOut()
}
