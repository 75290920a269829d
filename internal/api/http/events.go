package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/activist-org/activist-api/internal/api/cache"
	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/pkg/httpx"
)

type EventsHandler struct {
	Events *service.EventService
	Cache  cache.Cache
}

type eventRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

func (req eventRequest) input() (service.EventInput, error) {
	in := service.EventInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Tagline:     req.Tagline,
		Description: req.Description,
		Type:        domain.EventType(req.Type),
		Location:    req.Location,
	}

	var err error
	if req.StartTime != "" {
		if in.StartTime, err = time.Parse(time.RFC3339, req.StartTime); err != nil {
			return in, fmt.Errorf("invalid start_time: %w", err)
		}
	}
	if req.EndTime != "" {
		if in.EndTime, err = time.Parse(time.RFC3339, req.EndTime); err != nil {
			return in, fmt.Errorf("invalid end_time: %w", err)
		}
	}
	return in, nil
}

func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	respondCached(w, r, h.Cache, cache.NamespaceEventList, "all", func() (any, error) {
		events, err := h.Events.List(r.Context())
		if err != nil {
			return nil, err
		}
		results := toEventResponses(events)
		return httpx.ListResponse{Count: len(results), Results: results}, nil
	})
}

func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	respondCached(w, r, h.Cache, cache.NamespaceEventDetail, id, func() (any, error) {
		event, err := h.Events.Get(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return toEventResponse(event), nil
	})
}

func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	in, err := req.input()
	if err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Times must be RFC 3339.")
		return
	}

	event, err := h.Events.Create(r.Context(), userFrom(r.Context()), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toEventResponse(event))
}

func (h *EventsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	in, err := req.input()
	if err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Times must be RFC 3339.")
		return
	}

	event, err := h.Events.Update(r.Context(), userFrom(r.Context()), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toEventResponse(event))
}

func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Events.Delete(r.Context(), userFrom(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCalendar exports one event as a downloadable iCalendar file.
func (h *EventsHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		httpx.WriteDetail(w, http.StatusBadRequest, "Event ID is required.")
		return
	}

	event, err := h.Events.Get(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", service.CalendarFilename(event)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(service.EventICS(event))
}
