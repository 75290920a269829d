package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/activist-org/activist-api/internal/api/cache"
	"github.com/activist-org/activist-api/internal/api/store"
)

func newCommunityServices(t *testing.T) (*OrganizationService, *GroupService, cache.Cache, store.Store) {
	t.Helper()
	st := newTestStore(t)
	mem := cache.NewMemory(cache.DefaultTTL)
	notifier := &MutationNotifier{Cache: mem}
	orgs := &OrganizationService{Store: st, Notifier: notifier}
	groups := &GroupService{Store: st, Notifier: notifier}
	return orgs, groups, mem, st
}

func TestOrganizationCRUD(t *testing.T) {
	orgs, _, _, st := newCommunityServices(t)
	ctx := context.Background()
	owner := seedUser(t, st, "owner", false)

	org, err := orgs.Create(ctx, owner, OrganizationInput{
		Name:     "Climate Forward",
		Slug:     "climate-forward",
		Tagline:  "Act now",
		Location: "Berlin",
	})
	require.NoError(t, err)
	require.Equal(t, owner.ID, org.CreatedBy)

	got, err := orgs.Get(ctx, org.ID)
	require.NoError(t, err)
	require.Equal(t, "Climate Forward", got.Name)

	updated, err := orgs.Update(ctx, owner, org.ID, OrganizationInput{
		Name: "Climate Forward!",
		Slug: "climate-forward",
	})
	require.NoError(t, err)
	require.Equal(t, "Climate Forward!", updated.Name)

	require.NoError(t, orgs.Delete(ctx, owner, org.ID))
	_, err = orgs.Get(ctx, org.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOrganizationValidation(t *testing.T) {
	orgs, _, _, st := newCommunityServices(t)
	ctx := context.Background()
	owner := seedUser(t, st, "owner", false)

	_, err := orgs.Create(ctx, owner, OrganizationInput{Slug: "no-name"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Name is required.", ve.Detail)

	_, err = orgs.Create(ctx, owner, OrganizationInput{Name: "A", Slug: "dup"})
	require.NoError(t, err)
	_, err = orgs.Create(ctx, owner, OrganizationInput{Name: "B", Slug: "dup"})
	require.ErrorAs(t, err, &ve)
}

func TestOrganizationOwnershipMatrix(t *testing.T) {
	orgs, _, _, st := newCommunityServices(t)
	ctx := context.Background()

	owner := seedUser(t, st, "owner", false)
	stranger := seedUser(t, st, "stranger", false)
	staff := seedUser(t, st, "staff", true)

	org, err := orgs.Create(ctx, owner, OrganizationInput{Name: "A", Slug: "a"})
	require.NoError(t, err)

	in := OrganizationInput{Name: "A2", Slug: "a"}

	_, err = orgs.Update(ctx, stranger, org.ID, in)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, orgs.Delete(ctx, stranger, org.ID), ErrUnauthorized)

	_, err = orgs.Update(ctx, staff, org.ID, in)
	require.NoError(t, err)
	_, err = orgs.Update(ctx, owner, org.ID, in)
	require.NoError(t, err)

	require.NoError(t, orgs.Delete(ctx, staff, org.ID))
}

func TestOrganizationWriteInvalidatesCache(t *testing.T) {
	orgs, _, mem, st := newCommunityServices(t)
	ctx := context.Background()
	owner := seedUser(t, st, "owner", false)

	require.NoError(t, mem.Put(ctx, cache.NamespaceOrganizationList, "all", []byte("stale")))
	require.NoError(t, mem.Put(ctx, cache.NamespaceEventList, "all", []byte("events")))

	_, err := orgs.Create(ctx, owner, OrganizationInput{Name: "A", Slug: "a"})
	require.NoError(t, err)

	_, ok, err := mem.Get(ctx, cache.NamespaceOrganizationList, "all")
	require.NoError(t, err)
	require.False(t, ok, "organization list cache should be purged by the write")

	_, ok, err = mem.Get(ctx, cache.NamespaceEventList, "all")
	require.NoError(t, err)
	require.True(t, ok, "unrelated namespaces must survive")
}

func TestGroupRequiresExistingOrganization(t *testing.T) {
	orgs, groups, _, st := newCommunityServices(t)
	ctx := context.Background()
	owner := seedUser(t, st, "owner", false)

	_, err := groups.Create(ctx, owner, GroupInput{
		OrgID: "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Name:  "Local chapter",
		Slug:  "local",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Organization does not exist.", ve.Detail)

	org, err := orgs.Create(ctx, owner, OrganizationInput{Name: "A", Slug: "a"})
	require.NoError(t, err)

	group, err := groups.Create(ctx, owner, GroupInput{OrgID: org.ID, Name: "Local chapter", Slug: "local"})
	require.NoError(t, err)
	require.Equal(t, org.ID, group.OrgID)
}

func TestGroupMoveToAnotherOrganization(t *testing.T) {
	orgs, groups, _, st := newCommunityServices(t)
	ctx := context.Background()
	owner := seedUser(t, st, "owner", false)

	orgA, err := orgs.Create(ctx, owner, OrganizationInput{Name: "A", Slug: "a"})
	require.NoError(t, err)
	orgB, err := orgs.Create(ctx, owner, OrganizationInput{Name: "B", Slug: "b"})
	require.NoError(t, err)

	group, err := groups.Create(ctx, owner, GroupInput{OrgID: orgA.ID, Name: "G", Slug: "g"})
	require.NoError(t, err)

	updated, err := groups.Update(ctx, owner, group.ID, GroupInput{OrgID: orgB.ID, Name: "G", Slug: "g"})
	require.NoError(t, err)
	require.Equal(t, orgB.ID, updated.OrgID)

	// The move must be persisted, not just echoed in the update result.
	got, err := groups.Get(ctx, group.ID)
	require.NoError(t, err)
	require.Equal(t, orgB.ID, got.OrgID)

	// Moving to an absent organization is a validation error.
	_, err = groups.Update(ctx, owner, group.ID, GroupInput{
		OrgID: "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Name:  "G",
		Slug:  "g",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Organization does not exist.", ve.Detail)
}

func TestDeleteOrganizationCascadesGroups(t *testing.T) {
	orgs, groups, _, st := newCommunityServices(t)
	ctx := context.Background()
	owner := seedUser(t, st, "owner", false)

	org, err := orgs.Create(ctx, owner, OrganizationInput{Name: "A", Slug: "a"})
	require.NoError(t, err)
	group, err := groups.Create(ctx, owner, GroupInput{OrgID: org.ID, Name: "G", Slug: "g"})
	require.NoError(t, err)

	require.NoError(t, orgs.Delete(ctx, owner, org.ID))

	_, err = groups.Get(ctx, group.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNotifierContinuesOnCacheFailure(t *testing.T) {
	st := newTestStore(t)
	notifier := &MutationNotifier{Cache: failingCache{}}
	orgs := &OrganizationService{Store: st, Notifier: notifier}
	owner := seedUser(t, st, "owner", false)

	org, err := orgs.Create(context.Background(), owner, OrganizationInput{Name: "A", Slug: "a"})
	require.NoError(t, err, "write must succeed even when the cache is down")
	require.NotEmpty(t, org.ID)
}

type failingCache struct{}

func (failingCache) Get(ctx context.Context, ns cache.Namespace, key string) ([]byte, bool, error) {
	return nil, false, errBroken
}

func (failingCache) Put(ctx context.Context, ns cache.Namespace, key string, payload []byte) error {
	return errBroken
}

func (failingCache) InvalidateNamespace(ctx context.Context, namespaces ...cache.Namespace) error {
	return errBroken
}

func (failingCache) Ping(ctx context.Context) error { return errBroken }
func (failingCache) Close() error                   { return nil }

var errBroken = &cacheDownError{}

type cacheDownError struct{}

func (*cacheDownError) Error() string { return "cache down" }
