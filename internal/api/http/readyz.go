package http

import (
	"net/http"
	"time"

	"github.com/activist-org/activist-api/internal/api/cache"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/pkg/httpx"
)

type healthChecks struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

type readyzResponse struct {
	Status  string       `json:"status"`
	Uptime  string       `json:"uptime"`
	Version string       `json:"version"`
	Checks  healthChecks `json:"checks"`
}

// ReadyzHandler is the readiness probe: it checks the database and the
// cache. A degraded cache flips readiness because reads lean on it under
// load.
func ReadyzHandler(startTime time.Time, version string, st store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := healthChecks{Database: "ok", Cache: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := c.Ping(r.Context()); err != nil {
			checks.Cache = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, readyzResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
