package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/pkg/httpx"
	"github.com/activist-org/activist-api/pkg/slogx"
)

// bearerToken extracts the raw session token from the Authorization header.
// Returns "" when the header is missing or not a bearer credential.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// AuthnMiddleware resolves the bearer token to a user via the session store
// and injects the user into the request context. Requests without a valid
// session get a 401 and never reach the handler.
func AuthnMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user, err := auth.Authenticate(ctx, bearerToken(r))
			if err != nil {
				if !errors.Is(err, service.ErrUnauthenticated) {
					slogx.FromContext(ctx).Error("session lookup failed", "error", err)
				}
				httpx.WriteDetail(w, http.StatusUnauthorized, "Invalid or missing token.")
				return
			}

			ctx = context.WithValue(ctx, httpx.CtxKeyUser, user)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userFrom returns the authenticated user placed in context by
// AuthnMiddleware. Only valid behind that middleware.
func userFrom(ctx context.Context) domain.User {
	user, _ := ctx.Value(httpx.CtxKeyUser).(domain.User)
	return user
}
