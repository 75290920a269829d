package http

import (
	"encoding/json"
	"net/http"

	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/pkg/httpx"
)

// FlagsHandler serves one flag target kind. The router registers an instance
// per kind under that kind's path prefix.
type FlagsHandler struct {
	Flags *service.FlagService
	Kind  domain.FlagTarget
}

type flagRequest struct {
	TargetID string `json:"target_id"`
}

func (h *FlagsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	flag, err := h.Flags.Create(r.Context(), userFrom(r.Context()), h.Kind, req.TargetID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toFlagResponse(flag))
}

func (h *FlagsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	flags, err := h.Flags.ListByKind(r.Context(), h.Kind)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	results := toFlagResponses(flags)
	httpx.WriteJSON(w, http.StatusOK, httpx.ListResponse{Count: len(results), Results: results})
}

func (h *FlagsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Flags.Delete(r.Context(), userFrom(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
