package domain

import "time"

// SessionRecord is one row of the therapy history. Records are written
// exactly once, when a session ends, and are never updated or deleted.
type SessionRecord struct {
	ID              int64
	TherapyType     TherapyType
	Mode            TherapyMode
	DurationSeconds int
	Status          SessionStatus
	Timestamp       time.Time
	UserID          *int64
}

// OwnedSessionRecord is a SessionRecord joined with its owner's name,
// as shown on the admin history screen.
type OwnedSessionRecord struct {
	SessionRecord
	OwnerName    string
	OwnerSurname string
}
