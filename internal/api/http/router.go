package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/activist-org/activist-api/internal/api/cache"
	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/pkg/httpx"
	"github.com/activist-org/activist-api/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	cache cache.Cache

	AuthService         *service.AuthService
	OrganizationService *service.OrganizationService
	GroupService        *service.GroupService
	EventService        *service.EventService
	DiscussionService   *service.DiscussionService
	ResourceService     *service.ResourceService
	FlagService         *service.FlagService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	c cache.Cache,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		cache:        c,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCommunities()
	r.registerEvents()
	r.registerContent()
	r.registerFlags()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn builds the session middleware bound to the auth service.
func (r *Router) authn() httpx.Middleware {
	return AuthnMiddleware(r.AuthService)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints are rate limited hard by IP.
	r.Mux.Handle("POST /v1/auth/sign_up",
		httpx.Chain(http.HandlerFunc(h.HandleSignUp),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/sign_in",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/sign_out",
		httpx.Chain(http.HandlerFunc(h.HandleSignOut),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/auth/delete",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/auth/delete/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/verify_email/{code}",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyEmail),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerCommunities() {
	orgs := &OrganizationsHandler{Organizations: r.OrganizationService, Cache: r.cache}

	r.Mux.Handle("GET /v1/communities/organizations",
		httpx.Chain(http.HandlerFunc(orgs.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/communities/organizations/{id}",
		httpx.Chain(http.HandlerFunc(orgs.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /v1/communities/organizations",
		httpx.Chain(http.HandlerFunc(orgs.HandleCreate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/communities/organizations/{id}",
		httpx.Chain(http.HandlerFunc(orgs.HandleUpdate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/communities/organizations/{id}",
		httpx.Chain(http.HandlerFunc(orgs.HandleDelete),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	groups := &GroupsHandler{Groups: r.GroupService, Cache: r.cache}

	r.Mux.Handle("GET /v1/communities/groups",
		httpx.Chain(http.HandlerFunc(groups.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/communities/groups/{id}",
		httpx.Chain(http.HandlerFunc(groups.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /v1/communities/groups",
		httpx.Chain(http.HandlerFunc(groups.HandleCreate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/communities/groups/{id}",
		httpx.Chain(http.HandlerFunc(groups.HandleUpdate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/communities/groups/{id}",
		httpx.Chain(http.HandlerFunc(groups.HandleDelete),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	resources := &ResourcesHandler{Resources: r.ResourceService}
	r.Mux.Handle("GET /v1/communities/organization_resources",
		httpx.Chain(http.HandlerFunc(resources.HandleListOrganizationResources),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerEvents() {
	events := &EventsHandler{Events: r.EventService, Cache: r.cache}

	r.Mux.Handle("GET /v1/events/events",
		httpx.Chain(http.HandlerFunc(events.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/events/events/{id}",
		httpx.Chain(http.HandlerFunc(events.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /v1/events/events",
		httpx.Chain(http.HandlerFunc(events.HandleCreate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/events/events/{id}",
		httpx.Chain(http.HandlerFunc(events.HandleUpdate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/events/events/{id}",
		httpx.Chain(http.HandlerFunc(events.HandleDelete),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/events/event_calendar",
		httpx.Chain(http.HandlerFunc(events.HandleCalendar),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerContent() {
	discussions := &DiscussionsHandler{Discussions: r.DiscussionService}

	r.Mux.Handle("GET /v1/content/discussions",
		httpx.Chain(http.HandlerFunc(discussions.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/content/discussions/{id}",
		httpx.Chain(http.HandlerFunc(discussions.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /v1/content/discussions",
		httpx.Chain(http.HandlerFunc(discussions.HandleCreate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/content/discussions/{id}",
		httpx.Chain(http.HandlerFunc(discussions.HandleUpdate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/content/discussions/{id}",
		httpx.Chain(http.HandlerFunc(discussions.HandleDelete),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	resources := &ResourcesHandler{Resources: r.ResourceService}

	r.Mux.Handle("GET /v1/content/resources",
		httpx.Chain(http.HandlerFunc(resources.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/content/resources/{id}",
		httpx.Chain(http.HandlerFunc(resources.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /v1/content/resources",
		httpx.Chain(http.HandlerFunc(resources.HandleCreate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/content/resources/{id}",
		httpx.Chain(http.HandlerFunc(resources.HandleUpdate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/content/resources/{id}",
		httpx.Chain(http.HandlerFunc(resources.HandleDelete),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerFlags() {
	// Flag endpoints repeat per target kind: list/create on the plural path,
	// delete on the singular one.
	kinds := []struct {
		prefix string
		plural string
		kind   domain.FlagTarget
	}{
		{"/v1/communities", "organization", domain.FlagTargetOrganization},
		{"/v1/communities", "group", domain.FlagTargetGroup},
		{"/v1/events", "event", domain.FlagTargetEvent},
		{"/v1/content", "resource", domain.FlagTargetResource},
		{"/v1/auth", "user", domain.FlagTargetUser},
	}

	for _, k := range kinds {
		h := &FlagsHandler{Flags: r.FlagService, Kind: k.kind}

		r.Mux.Handle("POST "+k.prefix+"/"+k.plural+"_flags",
			httpx.Chain(http.HandlerFunc(h.HandleCreate),
				r.authn(),
				httpx.RateLimitByUser(httpx.ModerateLimit),
			),
		)
		r.Mux.Handle("GET "+k.prefix+"/"+k.plural+"_flags",
			httpx.Chain(http.HandlerFunc(h.HandleList),
				httpx.RateLimitByIP(httpx.LenientLimit),
			),
		)
		r.Mux.Handle("DELETE "+k.prefix+"/"+k.plural+"_flag/{id}",
			httpx.Chain(http.HandlerFunc(h.HandleDelete),
				r.authn(),
				httpx.RateLimitByUser(httpx.ModerateLimit),
			),
		)
	}
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.cache),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
