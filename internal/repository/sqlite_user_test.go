package repository

import (
	"context"
	"testing"

	"github.com/emirirr/terapi/internal/domain"
	"github.com/emirirr/terapi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndGetBySerial(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	u := testutil.NewTestUser("Ada", "Lovelace", "SN001", "hunter2")
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID, "create assigns the id")

	fetched, err := repo.GetBySerial(ctx, "SN001")
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.ID)
	assert.Equal(t, "Ada", fetched.Name)
	assert.Equal(t, "Lovelace", fetched.Surname)
	assert.Equal(t, domain.RoleUser, fetched.Role)
	assert.Equal(t, u.PasswordDigest, fetched.PasswordDigest)
	assert.False(t, fetched.CreatedAt.IsZero())
}

func TestUserRepo_DuplicateSerial(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestUser("Ada", "Lovelace", "SN001", "hunter2")))

	err := repo.Create(ctx, testutil.NewTestUser("Grace", "Hopper", "SN001", "other"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSerial)
}

func TestUserRepo_GetBySerial_NotFound(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))

	_, err := repo.GetBySerial(context.Background(), "SN404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_List_OrderedWithSeededAdmin(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestUser("Ada", "Lovelace", "SN001", "hunter2")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestUser("Grace", "Hopper", "SN002", "cobol",
		testutil.WithRole(domain.RoleAdmin))))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3, "seeded admin plus the two created users")

	// Ordered by id: seed first, then insertion order.
	assert.Equal(t, "admin", users[0].SerialNumber)
	assert.Equal(t, "SN001", users[1].SerialNumber)
	assert.Equal(t, "SN002", users[2].SerialNumber)
	assert.Equal(t, domain.RoleAdmin, users[2].Role)
}
