package http

import (
	"encoding/json"
	"net/http"

	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/pkg/httpx"
)

type DiscussionsHandler struct {
	Discussions *service.DiscussionService
}

type discussionRequest struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	OrgID    *string `json:"org_id"`
}

func (req discussionRequest) input() service.DiscussionInput {
	return service.DiscussionInput{
		Title:    req.Title,
		Category: req.Category,
		OrgID:    req.OrgID,
	}
}

func (h *DiscussionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	discussions, err := h.Discussions.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	results := toDiscussionResponses(discussions)
	httpx.WriteJSON(w, http.StatusOK, httpx.ListResponse{Count: len(results), Results: results})
}

func (h *DiscussionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	discussion, err := h.Discussions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDiscussionResponse(discussion))
}

func (h *DiscussionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req discussionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	discussion, err := h.Discussions.Create(r.Context(), userFrom(r.Context()), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toDiscussionResponse(discussion))
}

func (h *DiscussionsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req discussionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	discussion, err := h.Discussions.Update(r.Context(), userFrom(r.Context()), r.PathValue("id"), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDiscussionResponse(discussion))
}

func (h *DiscussionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Discussions.Delete(r.Context(), userFrom(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
