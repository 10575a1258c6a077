package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emirirr/terapi/internal/domain"
)

// SQLiteHistoryRepo implements HistoryRepo using a SQLite database.
type SQLiteHistoryRepo struct {
	db *sql.DB
}

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(db *sql.DB) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: db}
}

func (r *SQLiteHistoryRepo) Append(ctx context.Context, rec *domain.SessionRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = nowUTC()
	}
	query := `INSERT INTO history (therapy_type, mode, duration_seconds, status, timestamp, user_id)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		string(rec.TherapyType),
		string(rec.Mode),
		rec.DurationSeconds,
		string(rec.Status),
		rec.Timestamp.Format(time.RFC3339),
		nullableID(rec.UserID),
	)
	if err != nil {
		return fmt.Errorf("inserting history record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted history id: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *SQLiteHistoryRepo) List(ctx context.Context) ([]*domain.SessionRecord, error) {
	query := `SELECT id, therapy_type, mode, duration_seconds, status, timestamp, user_id
		FROM history ORDER BY timestamp DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var records []*domain.SessionRecord
	for rows.Next() {
		var rec domain.SessionRecord
		var therapy, mode, status, timestampStr string
		var userID sql.NullInt64

		if err := rows.Scan(&rec.ID, &therapy, &mode, &rec.DurationSeconds, &status, &timestampStr, &userID); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if err := populateRecord(&rec, therapy, mode, status, timestampStr, userID); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return records, nil
}

func (r *SQLiteHistoryRepo) ListWithOwners(ctx context.Context) ([]*domain.OwnedSessionRecord, error) {
	query := `SELECT h.id, h.therapy_type, h.mode, h.duration_seconds, h.status, h.timestamp, h.user_id,
			u.name, u.surname
		FROM history h
		LEFT JOIN users u ON h.user_id = u.id
		ORDER BY h.timestamp DESC, h.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing history with owners: %w", err)
	}
	defer rows.Close()

	var records []*domain.OwnedSessionRecord
	for rows.Next() {
		var rec domain.OwnedSessionRecord
		var therapy, mode, status, timestampStr string
		var userID sql.NullInt64
		var name, surname sql.NullString

		if err := rows.Scan(&rec.ID, &therapy, &mode, &rec.DurationSeconds, &status, &timestampStr,
			&userID, &name, &surname); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if err := populateRecord(&rec.SessionRecord, therapy, mode, status, timestampStr, userID); err != nil {
			return nil, err
		}
		if rec.UserID != nil && !name.Valid {
			return nil, fmt.Errorf("history record %d (user %d): %w", rec.ID, *rec.UserID, ErrOrphanedRecord)
		}
		rec.OwnerName = name.String
		rec.OwnerSurname = surname.String
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return records, nil
}

// populateRecord fills parsed fields on a SessionRecord after scanning raw strings.
func populateRecord(rec *domain.SessionRecord, therapy, mode, status, timestampStr string, userID sql.NullInt64) error {
	rec.TherapyType = domain.TherapyType(therapy)
	rec.Mode = domain.TherapyMode(mode)
	rec.Status = domain.SessionStatus(status)
	rec.UserID = scanNullableID(userID)

	ts, err := time.Parse(time.RFC3339, timestampStr)
	if err != nil {
		return fmt.Errorf("parsing timestamp: %w", err)
	}
	rec.Timestamp = ts
	return nil
}
