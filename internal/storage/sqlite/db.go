// ABOUTME: SQLite database connection and lifecycle management
// ABOUTME: One database file per owner so sessions can never share rows
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection scoped to a single owner
type DB struct {
	conn    *sql.DB
	path    string
	ownerID string
}

// DefaultDataDir returns the default data directory following XDG spec.
// Respects XDG_DATA_HOME environment variable override for testing.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "wellness")
}

// OwnerDBPath returns the database file path for an owner
func OwnerDBPath(ownerID string) string {
	return filepath.Join(DefaultDataDir(), "owners", ownerID+".db")
}

// validOwnerID rejects owner IDs that could escape the owners directory
func validOwnerID(ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("owner ID must not be empty")
	}
	if strings.ContainsAny(ownerID, `/\`) || ownerID == "." || ownerID == ".." {
		return fmt.Errorf("owner ID %q contains path separators", ownerID)
	}
	return nil
}

// OpenForOwner opens or creates the cache database belonging to ownerID.
// Each owner gets a distinct file; opening with no owner is invalid.
func OpenForOwner(ownerID string) (*DB, error) {
	if err := validOwnerID(ownerID); err != nil {
		return nil, err
	}

	db, err := Open(OwnerDBPath(ownerID))
	if err != nil {
		return nil, err
	}
	db.ownerID = ownerID
	return db, nil
}

// Open opens or creates a SQLite database at the given path
func Open(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: path,
	}

	// Initialize schema
	if err := db.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// OpenInMemory creates an in-memory SQLite database (for testing)
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: ":memory:",
	}

	if err := db.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// initSchema creates all database tables and indexes
func (db *DB) initSchema() error {
	_, err := db.conn.Exec(Schema)
	return err
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// OwnerID returns the owner this database is scoped to, if opened per-owner
func (db *DB) OwnerID() string {
	return db.ownerID
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
