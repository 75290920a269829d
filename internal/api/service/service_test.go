package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/internal/api/store/drivers/sqlite"
	"github.com/activist-org/activist-api/pkg/cryptox"
	"github.com/activist-org/activist-api/pkg/idx"
)

// newTestStore opens a throwaway sqlite database with migrations applied.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dir := t.TempDir()
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.key"))

	st, err := sqlite.NewStore(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// seedUser inserts a confirmed active user and returns it.
func seedUser(t *testing.T, st store.Store, username string, moderator bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("test_pass")
	require.NoError(t, err)

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
		Confirmed:    true,
		Staff:        moderator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}
