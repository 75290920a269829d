package http

import (
	"errors"
	"net/http"

	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/pkg/httpx"
	"github.com/activist-org/activist-api/pkg/slogx"
)

// writeServiceError maps service and store errors onto the HTTP contract.
// Authorization failures deliberately answer 401, not 403: the API does not
// distinguish "who are you" from "you may not" to the caller.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.WriteDetail(w, http.StatusBadRequest, ve.Detail)
	case errors.Is(err, service.ErrUserExists):
		httpx.WriteDetail(w, http.StatusBadRequest, "A user with this username already exists.")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteDetail(w, http.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, service.ErrAccountNotConfirmed):
		httpx.WriteDetail(w, http.StatusUnauthorized, "Account email has not been confirmed.")
	case errors.Is(err, service.ErrAccountDisabled):
		httpx.WriteDetail(w, http.StatusUnauthorized, "Account is suspended or banned.")
	case errors.Is(err, service.ErrUnauthenticated):
		httpx.WriteDetail(w, http.StatusUnauthorized, "Invalid or missing token.")
	case errors.Is(err, service.ErrUnauthorized):
		httpx.WriteDetail(w, http.StatusUnauthorized, "You are not allowed to perform this action.")
	case errors.Is(err, service.ErrCodeNotFound):
		httpx.WriteDetail(w, http.StatusNotFound, "Verification code not found.")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteDetail(w, http.StatusNotFound, "Not found.")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Internal server error.")
	}
}
