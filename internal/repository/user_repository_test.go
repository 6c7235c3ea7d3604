package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
)

func newUserRepo(t *testing.T) UserRepository {
	t.Helper()
	return NewFileUserRepository(filepath.Join(t.TempDir(), "users.json"))
}

func TestUserRepositoryCreateAssignsSequentialIDs(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, &model.User{Username: "alice", Password: "pw", Email: "a@example.com", Role: model.RoleAdministrator})
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID)

	second, err := repo.Create(ctx, &model.User{Username: "bob", Password: "pw", Email: "b@example.com", Role: model.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "2", second.ID)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepositoryIDsSkipGapsAfterDelete(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := repo.Create(ctx, &model.User{Username: name, Password: "pw", Email: name + "@example.com", Role: model.RoleUser})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Delete(ctx, "2"))

	// next id comes from max(existing)+1, not from filling the gap
	u, err := repo.Create(ctx, &model.User{Username: "dave", Password: "pw", Email: "d@example.com", Role: model.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "4", u.ID)
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.User{Username: "alice", Password: "pw", Email: "a@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.User{Username: "alice", Password: "other", Email: "a2@example.com", Role: model.RoleUser})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)

	// store unchanged
	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepositoryDuplicateUsernameIsCaseSensitive(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.User{Username: "alice", Password: "pw", Email: "a@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.User{Username: "Alice", Password: "pw", Email: "a2@example.com", Role: model.RoleUser})
	assert.NoError(t, err)
}

func TestUserRepositoryFind(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.User{Username: "alice", Password: "pw", Email: "a@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.FindByID(ctx, "999")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = repo.FindByUsername(ctx, "ALICE")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepositoryDelete(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.User{Username: "alice", Password: "pw", Email: "a@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), apperrors.ErrUserNotFound)
}

func TestUserRepositoryRecordLogin(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.User{Username: "alice", Password: "pw", Email: "a@example.com", Role: model.RoleUser})
	require.NoError(t, err)
	assert.Nil(t, created.LastLogin)

	when := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	require.NoError(t, repo.RecordLogin(ctx, created.ID, when))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLogin)
	assert.Equal(t, when.Format(time.RFC3339), *found.LastLogin)

	assert.ErrorIs(t, repo.RecordLogin(ctx, "999", when), apperrors.ErrUserNotFound)
}

func TestUserRepositoryEmptyDirectory(t *testing.T) {
	repo := newUserRepo(t)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepositoryPersistsPrettyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	repo := NewFileUserRepository(path)

	_, err := repo.Create(context.Background(), &model.User{Username: "alice", Password: "pw", Email: "a@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"users\"")
	assert.Contains(t, string(data), "\n    ")
}
