package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminSerial is the login handle of the seeded administrator.
// The matching default password is "admin"; deployments are expected to
// rotate it after first login.
const DefaultAdminSerial = "admin"

const defaultAdminPassword = "admin"

// Migrate runs all schema migrations and seeds the default admin account.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := seedDefaultAdmin(db); err != nil {
		return fmt.Errorf("seeding default admin: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		surname         TEXT NOT NULL,
		serial_number   TEXT NOT NULL UNIQUE,
		password_digest TEXT NOT NULL,
		role            TEXT NOT NULL DEFAULT 'user'
		                CHECK(role IN ('admin','user')),
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS history (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		therapy_type     TEXT NOT NULL,
		mode             TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL CHECK(duration_seconds >= 0),
		status           TEXT NOT NULL
		                 CHECK(status IN ('completed','stopped')),
		timestamp        TEXT NOT NULL,
		user_id          INTEGER REFERENCES users(id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_history_user ON history(user_id)`,
}

// seedDefaultAdmin inserts the built-in administrator account if no user
// with the admin serial number exists yet. Idempotent: re-running against
// an initialized store is a no-op and never touches existing rows.
func seedDefaultAdmin(db *sql.DB) error {
	ctx := context.Background()

	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE serial_number = ?`, DefaultAdminSerial).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking for admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing default admin password: %w", err)
	}

	// INSERT OR IGNORE guards against a concurrent first-run racing the
	// existence check above; serial_number is UNIQUE.
	_, err = db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (name, surname, serial_number, password_digest, role, created_at)
		 VALUES ('Admin', 'User', ?, ?, 'admin', ?)`,
		DefaultAdminSerial, string(digest), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting admin account: %w", err)
	}
	return nil
}
