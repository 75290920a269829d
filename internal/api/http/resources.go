package http

import (
	"encoding/json"
	"net/http"

	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/pkg/httpx"
)

type ResourcesHandler struct {
	Resources *service.ResourceService
}

type resourceRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	OrgID       *string `json:"org_id"`
}

func (req resourceRequest) input() service.ResourceInput {
	return service.ResourceInput{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		OrgID:       req.OrgID,
	}
}

func (h *ResourcesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	resources, err := h.Resources.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	results := toResourceResponses(resources)
	httpx.WriteJSON(w, http.StatusOK, httpx.ListResponse{Count: len(results), Results: results})
}

// HandleListOrganizationResources returns only the resources attached to an
// organization.
func (h *ResourcesHandler) HandleListOrganizationResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.Resources.ListOrganizationResources(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	results := toResourceResponses(resources)
	httpx.WriteJSON(w, http.StatusOK, httpx.ListResponse{Count: len(results), Results: results})
}

func (h *ResourcesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	resource, err := h.Resources.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResourceResponse(resource))
}

func (h *ResourcesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	resource, err := h.Resources.Create(r.Context(), userFrom(r.Context()), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toResourceResponse(resource))
}

func (h *ResourcesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	resource, err := h.Resources.Update(r.Context(), userFrom(r.Context()), r.PathValue("id"), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResourceResponse(resource))
}

func (h *ResourcesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Resources.Delete(r.Context(), userFrom(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
