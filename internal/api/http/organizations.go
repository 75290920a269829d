package http

import (
	"encoding/json"
	"net/http"

	"github.com/activist-org/activist-api/internal/api/cache"
	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/pkg/httpx"
)

type OrganizationsHandler struct {
	Organizations *service.OrganizationService
	Cache         cache.Cache
}

type organizationRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Tagline  string `json:"tagline"`
	Location string `json:"location"`
}

func (req organizationRequest) input() service.OrganizationInput {
	return service.OrganizationInput{
		Name:     req.Name,
		Slug:     req.Slug,
		Tagline:  req.Tagline,
		Location: req.Location,
	}
}

func (h *OrganizationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	respondCached(w, r, h.Cache, cache.NamespaceOrganizationList, "all", func() (any, error) {
		orgs, err := h.Organizations.List(r.Context())
		if err != nil {
			return nil, err
		}
		results := toOrganizationResponses(orgs)
		return httpx.ListResponse{Count: len(results), Results: results}, nil
	})
}

func (h *OrganizationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	respondCached(w, r, h.Cache, cache.NamespaceOrganizationDetail, id, func() (any, error) {
		org, err := h.Organizations.Get(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return toOrganizationResponse(org), nil
	})
}

func (h *OrganizationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	org, err := h.Organizations.Create(r.Context(), userFrom(r.Context()), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toOrganizationResponse(org))
}

func (h *OrganizationsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	org, err := h.Organizations.Update(r.Context(), userFrom(r.Context()), r.PathValue("id"), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrganizationResponse(org))
}

func (h *OrganizationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Organizations.Delete(r.Context(), userFrom(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
