package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contas/internal/core"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "contas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedUser(t *testing.T, repo *SQLiteRepository) core.User {
	t.Helper()
	user := core.User{
		UserID:       uuid.New(),
		Name:         "João",
		Email:        "joao@example.com",
		PasswordHash: "$2a$10$fakehash",
		Active:       true,
	}
	require.NoError(t, repo.InsertUser(context.Background(), user))
	return user
}

func TestUpdateUser_PersistsChanges(t *testing.T) {
	repo := newTestRepository(t)
	user := seedUser(t, repo)

	user.Name = "João Pedro"
	user.Occupation = "Engenheiro"
	require.NoError(t, repo.UpdateUser(context.Background(), user))

	got, err := repo.GetUserByID(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "João Pedro", got.Name)
	assert.Equal(t, "Engenheiro", got.Occupation)
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo := newTestRepository(t)
	seedUser(t, repo)

	missing := core.User{UserID: uuid.New(), Name: "Ninguém"}
	err := repo.UpdateUser(context.Background(), missing)
	assert.ErrorIs(t, err, core.ErrUserNotFound)
}

func TestUpdateUserPassword_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateUserPassword(context.Background(), uuid.New(), "$2a$10$otherhash")
	assert.ErrorIs(t, err, core.ErrUserNotFound)
}

func TestUpdateUserResetCode_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateUserResetCode(context.Background(), uuid.New(), "ABCD2345")
	assert.ErrorIs(t, err, core.ErrUserNotFound)
}

func TestUpdateUserPassword_ClearsResetCode(t *testing.T) {
	repo := newTestRepository(t)
	user := seedUser(t, repo)

	require.NoError(t, repo.UpdateUserResetCode(context.Background(), user.UserID, "ABCD2345"))
	require.NoError(t, repo.UpdateUserPassword(context.Background(), user.UserID, "$2a$10$newhash"))

	got, err := repo.GetUserByID(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.Empty(t, got.ResetCode)
	assert.Equal(t, "$2a$10$newhash", got.PasswordHash)
}
