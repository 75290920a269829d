// Package cache implements the response cache for list and detail payloads.
//
// Keys are grouped into typed namespaces, one list and one detail namespace
// per cacheable entity kind, so that invalidation after a write touches only
// the keys derived from that entity kind instead of scanning the whole
// keyspace.
package cache

import (
	"context"
	"time"
)

// Namespace identifies one group of cache keys. List and detail payloads for
// the same entity kind live in distinct namespaces but are always purged
// together.
type Namespace string

const (
	NamespaceOrganizationList   Namespace = "organizations:list"
	NamespaceOrganizationDetail Namespace = "organizations:detail"
	NamespaceGroupList          Namespace = "groups:list"
	NamespaceGroupDetail        Namespace = "groups:detail"
	NamespaceEventList          Namespace = "events:list"
	NamespaceEventDetail        Namespace = "events:detail"
)

// Entity enumerates the cacheable entity kinds. Discussions, resources,
// flags and users are served straight from the store.
type Entity string

const (
	EntityOrganization Entity = "organization"
	EntityGroup        Entity = "group"
	EntityEvent        Entity = "event"
)

// NamespacesFor returns every namespace derived from the given entity kind.
// A write to the entity must purge all of them.
func NamespacesFor(e Entity) []Namespace {
	switch e {
	case EntityOrganization:
		return []Namespace{NamespaceOrganizationList, NamespaceOrganizationDetail}
	case EntityGroup:
		return []Namespace{NamespaceGroupList, NamespaceGroupDetail}
	case EntityEvent:
		return []Namespace{NamespaceEventList, NamespaceEventDetail}
	}
	return nil
}

// DefaultTTL bounds staleness when an invalidation is lost (cache
// unreachable during a write). Writes invalidate synchronously, so the TTL
// is a backstop, not the primary freshness mechanism.
const DefaultTTL = 15 * time.Minute

// Cache is a keyed store of serialized response payloads.
type Cache interface {
	// Get returns the cached payload for (ns, key), or ok=false on a miss.
	Get(ctx context.Context, ns Namespace, key string) (payload []byte, ok bool, err error)

	// Put stores a payload under (ns, key) with the cache's TTL.
	Put(ctx context.Context, ns Namespace, key string, payload []byte) error

	// InvalidateNamespace removes every entry in the given namespaces.
	InvalidateNamespace(ctx context.Context, namespaces ...Namespace) error

	// Ping verifies the cache backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
