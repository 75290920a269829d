package http

import (
	"encoding/json"
	"net/http"

	"github.com/activist-org/activist-api/internal/api/cache"
	"github.com/activist-org/activist-api/pkg/slogx"
)

// respondCached serves (ns, key) from the cache when possible, otherwise
// builds the response with fetch, stores it and writes it. Cache failures on
// either side are logged and the request falls through to the store.
func respondCached(w http.ResponseWriter, r *http.Request, c cache.Cache, ns cache.Namespace, key string, fetch func() (any, error)) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if payload, ok, err := c.Get(ctx, ns, key); err != nil {
		log.Error("cache read failed", "namespace", string(ns), "error", err)
	} else if ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}

	body, err := fetch()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload, err := json.Marshal(body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := c.Put(ctx, ns, key, payload); err != nil {
		log.Error("cache write failed", "namespace", string(ns), "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
