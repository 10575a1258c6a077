package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emirirr/terapi/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db *sql.DB
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(db *sql.DB) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = nowUTC()
	}
	query := `INSERT INTO users (name, surname, serial_number, password_digest, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		u.Name,
		u.Surname,
		u.SerialNumber,
		u.PasswordDigest,
		string(u.Role),
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err, "users.serial_number") {
			return fmt.Errorf("user %q: %w", u.SerialNumber, ErrDuplicateSerial)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted user id: %w", err)
	}
	u.ID = id
	return nil
}

func (r *SQLiteUserRepo) GetBySerial(ctx context.Context, serialNumber string) (*domain.User, error) {
	query := `SELECT id, name, surname, serial_number, password_digest, role, created_at
		FROM users WHERE serial_number = ?`
	row := r.db.QueryRowContext(ctx, query, serialNumber)

	u, err := scanUser(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %q: %w", serialNumber, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, name, surname, serial_number, password_digest, role, created_at
		FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// scanUser scans one user from a row or rows scan function.
func scanUser(scan func(dest ...any) error) (*domain.User, error) {
	var u domain.User
	var role, createdAtStr string

	if err := scan(&u.ID, &u.Name, &u.Surname, &u.SerialNumber, &u.PasswordDigest, &role, &createdAtStr); err != nil {
		return nil, err
	}

	u.Role = domain.Role(role)
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	u.CreatedAt = createdAt
	return &u, nil
}
