// ABOUTME: SQLite database schema for the local wellness cache
// ABOUTME: Every row carries an owner key and a pending-sync marker
package sqlite

// Schema contains all SQL statements for database initialization.
// The pending column is the durable "not yet confirmed remote" marker
// swept by catch-up sync; it is set back to 0 once the remote write lands.
const Schema = `
-- Water intake events (append-only)
CREATE TABLE IF NOT EXISTS water_events (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    amount_ml INTEGER NOT NULL,
    occurred_at DATETIME NOT NULL,
    date TEXT NOT NULL,
    pending INTEGER NOT NULL DEFAULT 1
);

-- Step count events (append-only)
CREATE TABLE IF NOT EXISTS step_events (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    steps INTEGER NOT NULL,
    occurred_at DATETIME NOT NULL,
    date TEXT NOT NULL,
    pending INTEGER NOT NULL DEFAULT 1
);

-- Sleep session events (append-only)
CREATE TABLE IF NOT EXISTS sleep_events (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    sleep_start DATETIME,
    sleep_end DATETIME,
    duration_hours REAL NOT NULL DEFAULT 0,
    quality_rating INTEGER NOT NULL DEFAULT 0,
    occurred_at DATETIME NOT NULL,
    date TEXT NOT NULL,
    pending INTEGER NOT NULL DEFAULT 1
);

-- Derived per-day aggregates (recomputable, upserted)
CREATE TABLE IF NOT EXISTS daily_aggregates (
    owner_id TEXT NOT NULL,
    date TEXT NOT NULL,
    total_water_ml INTEGER NOT NULL DEFAULT 0,
    total_steps INTEGER NOT NULL DEFAULT 0,
    total_sleep_hours REAL NOT NULL DEFAULT 0,
    wellness_score INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    pending INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (owner_id, date)
);

-- Per-owner targets (one live row per owner)
CREATE TABLE IF NOT EXISTS goals (
    owner_id TEXT PRIMARY KEY,
    daily_steps_target INTEGER NOT NULL,
    daily_water_target_ml INTEGER NOT NULL,
    daily_sleep_target_hours REAL NOT NULL,
    weekly_exercise_minutes_target INTEGER NOT NULL,
    pending INTEGER NOT NULL DEFAULT 1
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_water_owner_date ON water_events(owner_id, date);
CREATE INDEX IF NOT EXISTS idx_steps_owner_date ON step_events(owner_id, date);
CREATE INDEX IF NOT EXISTS idx_sleep_owner_date ON sleep_events(owner_id, date);
CREATE INDEX IF NOT EXISTS idx_water_pending ON water_events(pending, occurred_at);
CREATE INDEX IF NOT EXISTS idx_steps_pending ON step_events(pending, occurred_at);
CREATE INDEX IF NOT EXISTS idx_sleep_pending ON sleep_events(pending, occurred_at);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
