package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/activist-org/activist-api/internal/api/cache"
	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/pkg/idx"
)

// EventInput is the writable surface of an event. Times are UTC instants;
// the HTTP layer parses RFC 3339.
type EventInput struct {
	Name        string
	Slug        string
	Tagline     string
	Description string
	Type        domain.EventType
	Location    string
	StartTime   time.Time
	EndTime     time.Time
}

func (in EventInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Name is required.")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return invalid("Slug is required.")
	}
	if in.Type != domain.EventTypeLearn && in.Type != domain.EventTypeAction {
		return invalid("Type must be learn or action.")
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return invalid("Start and end times are required.")
	}
	if in.EndTime.Before(in.StartTime) {
		return invalid("End time must not be before start time.")
	}
	return nil
}

// EventService owns event reads and writes.
type EventService struct {
	Store    store.Store
	Notifier *MutationNotifier
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.Store.Events().ListEvents(ctx)
}

func (s *EventService) Get(ctx context.Context, id string) (domain.Event, error) {
	return s.Store.Events().GetEventByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, actor domain.User, in EventInput) (domain.Event, error) {
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}

	now := time.Now().UTC()
	event := domain.Event{
		ID:          idx.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Slug:        strings.TrimSpace(in.Slug),
		Tagline:     in.Tagline,
		Description: in.Description,
		Type:        in.Type,
		Location:    in.Location,
		StartTime:   in.StartTime.UTC(),
		EndTime:     in.EndTime.UTC(),
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Events().CreateEvent(ctx, event); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Event{}, invalid("An event with this slug already exists.")
		}
		return domain.Event{}, err
	}

	s.Notifier.EntityChanged(ctx, cache.EntityEvent)
	return event, nil
}

func (s *EventService) Update(ctx context.Context, actor domain.User, id string, in EventInput) (domain.Event, error) {
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}

	event, err := s.Store.Events().GetEventByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	if event.CreatedBy != actor.ID && !actor.IsModerator() {
		return domain.Event{}, ErrUnauthorized
	}

	event.Name = strings.TrimSpace(in.Name)
	event.Slug = strings.TrimSpace(in.Slug)
	event.Tagline = in.Tagline
	event.Description = in.Description
	event.Type = in.Type
	event.Location = in.Location
	event.StartTime = in.StartTime.UTC()
	event.EndTime = in.EndTime.UTC()
	event.UpdatedAt = time.Now().UTC()

	if err := s.Store.Events().UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}

	s.Notifier.EntityChanged(ctx, cache.EntityEvent)
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, actor domain.User, id string) error {
	event, err := s.Store.Events().GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if event.CreatedBy != actor.ID && !actor.IsModerator() {
		return ErrUnauthorized
	}

	if err := s.Store.Events().DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.Notifier.EntityChanged(ctx, cache.EntityEvent)
	return nil
}
