package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/pkg/idx"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func insertUser(t *testing.T, st *Store, username string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Status:       domain.UserStatusActive,
		Confirmed:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

func TestUsersRoundtrip(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	code := "verify-me"
	now := time.Now().UTC()
	user := domain.User{
		ID:               idx.New().String(),
		Username:         "ada",
		Email:            "ada@example.com",
		PasswordHash:     "hash",
		Status:           domain.UserStatusPending,
		VerificationCode: &code,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	got, err := st.Users().GetUserByVerificationCode(ctx, code)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.False(t, got.Confirmed)

	require.NoError(t, st.Users().ConfirmUser(ctx, user.ID))

	got, err = st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, got.Confirmed)
	require.Equal(t, domain.UserStatusActive, got.Status)
	require.Nil(t, got.VerificationCode)

	_, err = st.Users().GetUserByVerificationCode(ctx, code)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	insertUser(t, st, "ada")

	dup := domain.User{
		ID:           idx.New().String(),
		Username:     "ada",
		Email:        "other@example.com",
		PasswordHash: "hash",
		Status:       domain.UserStatusPending,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
}

func TestSessionsExpiryFilter(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	user := insertUser(t, st, "ada")

	now := time.Now().UTC()
	expired := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: "expired-hash",
		ExpiresAt: now.Add(-time.Minute),
		CreatedAt: now.Add(-time.Hour),
	}
	live := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: "live-hash",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, expired))
	require.NoError(t, st.Sessions().CreateSession(ctx, live))

	// Expired rows exist but must never be returned.
	_, err := st.Sessions().GetSessionByTokenHash(ctx, "expired-hash")
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := st.Sessions().GetSessionByTokenHash(ctx, "live-hash")
	require.NoError(t, err)
	require.Equal(t, live.ID, got.ID)

	// Deleting an absent session succeeds (idempotent sign-out).
	require.NoError(t, st.Sessions().DeleteSessionByTokenHash(ctx, "nope"))

	require.NoError(t, st.Sessions().DeleteExpiredSessions(ctx, now))
	require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: "expired-hash",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}), "expired row should be gone, freeing its unique token hash")
}

func TestDeleteUserCascades(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	user := insertUser(t, st, "ada")

	session := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: "hash",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, session))

	flag := domain.Flag{
		ID:         idx.New().String(),
		TargetKind: domain.FlagTargetUser,
		TargetID:   "someone",
		CreatedBy:  user.ID,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, st.Flags().CreateFlag(ctx, flag))

	require.NoError(t, st.Users().DeleteUser(ctx, user.ID))

	_, err := st.Sessions().GetSessionByTokenHash(ctx, "hash")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Flags().GetFlagByID(ctx, flag.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOrganizationResourcesFilter(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	user := insertUser(t, st, "ada")

	now := time.Now().UTC()
	org := domain.Organization{
		ID:        idx.New().String(),
		Name:      "Org",
		Slug:      "org",
		CreatedBy: user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Organizations().CreateOrganization(ctx, org))

	attached := domain.Resource{
		ID:        idx.New().String(),
		Name:      "Guide",
		URL:       "https://example.com/guide",
		OrgID:     &org.ID,
		CreatedBy: user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	floating := domain.Resource{
		ID:        idx.New().String(),
		Name:      "Floating",
		URL:       "https://example.com/floating",
		CreatedBy: user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Resources().CreateResource(ctx, attached))
	require.NoError(t, st.Resources().CreateResource(ctx, floating))

	all, err := st.Resources().ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	orgOnly, err := st.Resources().ListOrganizationResources(ctx)
	require.NoError(t, err)
	require.Len(t, orgOnly, 1)
	require.Equal(t, attached.ID, orgOnly[0].ID)
}

func TestUpdatePersistsOrgID(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	user := insertUser(t, st, "ada")

	now := time.Now().UTC()
	orgA := domain.Organization{
		ID: idx.New().String(), Name: "A", Slug: "a",
		CreatedBy: user.ID, CreatedAt: now, UpdatedAt: now,
	}
	orgB := domain.Organization{
		ID: idx.New().String(), Name: "B", Slug: "b",
		CreatedBy: user.ID, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Organizations().CreateOrganization(ctx, orgA))
	require.NoError(t, st.Organizations().CreateOrganization(ctx, orgB))

	group := domain.Group{
		ID: idx.New().String(), OrgID: orgA.ID, Name: "G", Slug: "g",
		CreatedBy: user.ID, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Groups().CreateGroup(ctx, group))

	group.OrgID = orgB.ID
	require.NoError(t, st.Groups().UpdateGroup(ctx, group))

	gotGroup, err := st.Groups().GetGroupByID(ctx, group.ID)
	require.NoError(t, err)
	require.Equal(t, orgB.ID, gotGroup.OrgID)

	discussion := domain.Discussion{
		ID: idx.New().String(), Title: "T", Category: "general",
		CreatedBy: user.ID, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Discussions().CreateDiscussion(ctx, discussion))

	discussion.OrgID = &orgA.ID
	require.NoError(t, st.Discussions().UpdateDiscussion(ctx, discussion))

	gotDiscussion, err := st.Discussions().GetDiscussionByID(ctx, discussion.ID)
	require.NoError(t, err)
	require.NotNil(t, gotDiscussion.OrgID)
	require.Equal(t, orgA.ID, *gotDiscussion.OrgID)

	resource := domain.Resource{
		ID: idx.New().String(), Name: "R", URL: "https://example.com",
		OrgID: &orgA.ID, CreatedBy: user.ID, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Resources().CreateResource(ctx, resource))

	resource.OrgID = nil
	require.NoError(t, st.Resources().UpdateResource(ctx, resource))

	gotResource, err := st.Resources().GetResourceByID(ctx, resource.ID)
	require.NoError(t, err)
	require.Nil(t, gotResource.OrgID)
}

func TestWithTxCommitAndRollback(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Status:       domain.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// An error from fn rolls everything back.
	errAbort := errors.New("abort")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	_, err = st.Users().GetUserByUsername(ctx, "ada")
	require.ErrorIs(t, err, store.ErrNotFound)

	// A nil return commits.
	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, user)
	}))

	got, err := st.Users().GetUserByUsername(ctx, "ada")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestNotFoundMapping(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_, err := st.Organizations().GetOrganizationByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, st.Organizations().DeleteOrganization(ctx, "missing"), store.ErrNotFound)
	require.ErrorIs(t, st.Events().DeleteEvent(ctx, "missing"), store.ErrNotFound)
	require.ErrorIs(t, st.Flags().DeleteFlag(ctx, "missing"), store.ErrNotFound)
}
