package repository

import (
	"context"
	"testing"
	"time"

	"github.com/emirirr/terapi/internal/domain"
	"github.com/emirirr/terapi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepo_AppendAssignsIDAndTimestamp(t *testing.T) {
	repo := NewSQLiteHistoryRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := testutil.NewTestRecord(180, domain.StatusCompleted)
	require.NoError(t, repo.Append(ctx, rec))

	assert.NotZero(t, rec.ID)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestHistoryRepo_ListNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteHistoryRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	oldest := testutil.NewTestRecord(60, domain.StatusCompleted, testutil.WithTimestamp(now.Add(-2*time.Hour)))
	middle := testutil.NewTestRecord(90, domain.StatusStopped, testutil.WithTimestamp(now.Add(-1*time.Hour)))
	newest := testutil.NewTestRecord(120, domain.StatusCompleted, testutil.WithTimestamp(now))

	require.NoError(t, repo.Append(ctx, oldest))
	require.NoError(t, repo.Append(ctx, newest))
	require.NoError(t, repo.Append(ctx, middle))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, newest.ID, records[0].ID)
	assert.Equal(t, middle.ID, records[1].ID)
	assert.Equal(t, oldest.ID, records[2].ID)
}

func TestHistoryRepo_ListWithOwners(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteHistoryRepo(db)
	ctx := context.Background()

	ada := testutil.NewTestUser("Ada", "Lovelace", "SN001", "hunter2")
	require.NoError(t, users.Create(ctx, ada))

	owned := testutil.NewTestRecord(60, domain.StatusCompleted, testutil.WithOwner(ada.ID))
	anonymous := testutil.NewTestRecord(30, domain.StatusStopped)
	require.NoError(t, repo.Append(ctx, owned))
	require.NoError(t, repo.Append(ctx, anonymous))

	records, err := repo.ListWithOwners(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byID := map[int64]*domain.OwnedSessionRecord{}
	for _, r := range records {
		byID[r.ID] = r
	}
	assert.Equal(t, "Ada", byID[owned.ID].OwnerName)
	assert.Equal(t, "Lovelace", byID[owned.ID].OwnerSurname)
	assert.Empty(t, byID[anonymous.ID].OwnerName, "unowned rows carry empty owner fields")
}

func TestHistoryRepo_ListWithOwners_OrphanSurfacesError(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteHistoryRepo(db)
	ctx := context.Background()

	// Bypass foreign keys to simulate a corrupted store.
	_, err := db.Exec(`PRAGMA foreign_keys = OFF`)
	require.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO history (therapy_type, mode, duration_seconds, status, timestamp, user_id)
		 VALUES ('chest', 'manual', 60, 'completed', '2026-01-01T00:00:00Z', 9999)`)
	require.NoError(t, err)

	_, err = repo.ListWithOwners(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrphanedRecord)
}

func TestHistoryRepo_RoundTripsEnums(t *testing.T) {
	repo := NewSQLiteHistoryRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := &domain.SessionRecord{
		TherapyType:     domain.TherapyLeg,
		Mode:            domain.ModeIntense,
		DurationSeconds: 45,
		Status:          domain.StatusStopped,
	}
	require.NoError(t, repo.Append(ctx, rec))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.TherapyLeg, records[0].TherapyType)
	assert.Equal(t, domain.ModeIntense, records[0].Mode)
	assert.Equal(t, domain.StatusStopped, records[0].Status)
	assert.Equal(t, 45, records[0].DurationSeconds)
	assert.Nil(t, records[0].UserID)
}
