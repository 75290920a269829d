package http

import (
	"encoding/json"
	"net/http"

	"github.com/activist-org/activist-api/internal/api/cache"
	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/pkg/httpx"
)

type GroupsHandler struct {
	Groups *service.GroupService
	Cache  cache.Cache
}

type groupRequest struct {
	OrgID    string `json:"org_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Location string `json:"location"`
}

func (req groupRequest) input() service.GroupInput {
	return service.GroupInput{
		OrgID:    req.OrgID,
		Name:     req.Name,
		Slug:     req.Slug,
		Location: req.Location,
	}
}

func (h *GroupsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	respondCached(w, r, h.Cache, cache.NamespaceGroupList, "all", func() (any, error) {
		groups, err := h.Groups.List(r.Context())
		if err != nil {
			return nil, err
		}
		results := toGroupResponses(groups)
		return httpx.ListResponse{Count: len(results), Results: results}, nil
	})
}

func (h *GroupsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	respondCached(w, r, h.Cache, cache.NamespaceGroupDetail, id, func() (any, error) {
		group, err := h.Groups.Get(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return toGroupResponse(group), nil
	})
}

func (h *GroupsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	group, err := h.Groups.Create(r.Context(), userFrom(r.Context()), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (h *GroupsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	group, err := h.Groups.Update(r.Context(), userFrom(r.Context()), r.PathValue("id"), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGroupResponse(group))
}

func (h *GroupsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Groups.Delete(r.Context(), userFrom(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
