package service

import (
	"context"
	"log/slog"

	"github.com/activist-org/activist-api/internal/api/cache"
	"github.com/activist-org/activist-api/pkg/slogx"
)

// MutationNotifier purges cached responses after a committed write. Services
// call EntityChanged synchronously, after the store write succeeds and before
// the HTTP response is written, so a client reading its own write never sees
// a stale payload.
type MutationNotifier struct {
	Cache cache.Cache
}

// EntityChanged invalidates every cache namespace derived from the entity
// kind. A cache failure is logged and swallowed: the write already happened
// and the entry TTL bounds the resulting staleness.
func (n *MutationNotifier) EntityChanged(ctx context.Context, kind cache.Entity) {
	namespaces := cache.NamespacesFor(kind)
	if len(namespaces) == 0 {
		return
	}

	if err := n.Cache.InvalidateNamespace(ctx, namespaces...); err != nil {
		slogx.FromContext(ctx).Error("cache invalidation failed",
			slog.String("entity", string(kind)),
			slog.Any("error", err),
		)
	}
}
