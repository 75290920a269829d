package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/activist-org/activist-api/internal/api/cache"
)

func TestDiscussionOrgReattachment(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, st, "owner", false)

	orgs := &OrganizationService{Store: st, Notifier: &MutationNotifier{Cache: cache.NewMemory(cache.DefaultTTL)}}
	discussions := &DiscussionService{Store: st}

	org, err := orgs.Create(ctx, owner, OrganizationInput{Name: "Org", Slug: "org"})
	require.NoError(t, err)

	// Starts floating, then gets attached to the organization.
	discussion, err := discussions.Create(ctx, owner, DiscussionInput{Title: "Plans"})
	require.NoError(t, err)
	require.Nil(t, discussion.OrgID)

	_, err = discussions.Update(ctx, owner, discussion.ID, DiscussionInput{Title: "Plans", OrgID: &org.ID})
	require.NoError(t, err)

	got, err := discussions.Get(ctx, discussion.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OrgID)
	require.Equal(t, org.ID, *got.OrgID)

	// Detaching must persist too.
	_, err = discussions.Update(ctx, owner, discussion.ID, DiscussionInput{Title: "Plans"})
	require.NoError(t, err)

	got, err = discussions.Get(ctx, discussion.ID)
	require.NoError(t, err)
	require.Nil(t, got.OrgID)
}

func TestResourceOrgReattachment(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	owner := seedUser(t, st, "owner", false)

	orgs := &OrganizationService{Store: st, Notifier: &MutationNotifier{Cache: cache.NewMemory(cache.DefaultTTL)}}
	resources := &ResourceService{Store: st}

	org, err := orgs.Create(ctx, owner, OrganizationInput{Name: "Org", Slug: "org"})
	require.NoError(t, err)

	resource, err := resources.Create(ctx, owner, ResourceInput{
		Name: "Guide",
		URL:  "https://example.com/guide",
	})
	require.NoError(t, err)
	require.Nil(t, resource.OrgID)

	_, err = resources.Update(ctx, owner, resource.ID, ResourceInput{
		Name:  "Guide",
		URL:   "https://example.com/guide",
		OrgID: &org.ID,
	})
	require.NoError(t, err)

	got, err := resources.Get(ctx, resource.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OrgID)
	require.Equal(t, org.ID, *got.OrgID)

	// The attachment must show up in the organization-resources listing.
	attached, err := resources.ListOrganizationResources(ctx)
	require.NoError(t, err)
	require.Len(t, attached, 1)
	require.Equal(t, resource.ID, attached[0].ID)
}
