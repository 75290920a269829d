package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryGetPut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := NewMemory(time.Minute)

	_, ok, err := c.Get(ctx, NamespaceOrganizationList, "all")
	require.NoError(t, err)
	require.False(t, ok, "empty cache should miss")

	require.NoError(t, c.Put(ctx, NamespaceOrganizationList, "all", []byte(`{"count":0}`)))

	payload, ok, err := c.Get(ctx, NamespaceOrganizationList, "all")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`{"count":0}`), payload)
}

func TestMemoryNamespaceIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := NewMemory(time.Minute)
	require.NoError(t, c.Put(ctx, NamespaceOrganizationList, "all", []byte("orgs")))
	require.NoError(t, c.Put(ctx, NamespaceOrganizationDetail, "id-1", []byte("org")))
	require.NoError(t, c.Put(ctx, NamespaceEventList, "all", []byte("events")))

	// Purging the organization namespaces must leave events untouched.
	require.NoError(t, c.InvalidateNamespace(ctx, NamespacesFor(EntityOrganization)...))

	_, ok, err := c.Get(ctx, NamespaceOrganizationList, "all")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = c.Get(ctx, NamespaceOrganizationDetail, "id-1")
	require.NoError(t, err)
	require.False(t, ok)

	payload, ok, err := c.Get(ctx, NamespaceEventList, "all")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("events"), payload)
}

func TestMemoryEntriesExpire(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := NewMemory(10 * time.Millisecond)
	require.NoError(t, c.Put(ctx, NamespaceGroupList, "all", []byte("groups")))

	time.Sleep(30 * time.Millisecond)

	_, ok, err := c.Get(ctx, NamespaceGroupList, "all")
	require.NoError(t, err)
	require.False(t, ok, "entry should have expired")

	// The miss must also drop the dead entry so the namespace does not
	// accumulate garbage between invalidations.
	c.mu.RLock()
	_, held := c.namespaces[NamespaceGroupList]["all"]
	c.mu.RUnlock()
	require.False(t, held, "expired entry should be removed on read")
}

func TestNamespacesFor(t *testing.T) {
	t.Parallel()

	require.ElementsMatch(t,
		[]Namespace{NamespaceGroupList, NamespaceGroupDetail},
		NamespacesFor(EntityGroup))
	require.Nil(t, NamespacesFor(Entity("unknown")))
}
