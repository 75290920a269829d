package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignUp registers a new account. The account stays pending until the
// emailed verification code is redeemed.
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httpx.WriteDetail(w, http.StatusBadRequest, "Username, email and password are required.")
		return
	}

	user, err := h.AuthService.SignUp(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token string `json:"token"`
}

// HandleSignIn exchanges credentials for an opaque session token.
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteDetail(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	token, err := h.AuthService.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, signInResponse{Token: token})
}

// HandleSignOut revokes the presented session token. Idempotent.
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.SignOut(r.Context(), bearerToken(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes an account: the caller's own when no id is present in
// the path, otherwise the addressed one (self or staff only).
func (h *AuthHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor := userFrom(r.Context())

	targetID := r.PathValue("id")
	if targetID == "" {
		targetID = actor.ID
	}

	if err := h.AuthService.DeleteAccount(r.Context(), actor, targetID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleVerifyEmail redeems a verification code from the confirmation email.
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		httpx.WriteDetail(w, http.StatusBadRequest, "Verification code is required.")
		return
	}

	if err := h.AuthService.VerifyEmail(r.Context(), code); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.DetailResponse{Detail: "Email verified."})
}
