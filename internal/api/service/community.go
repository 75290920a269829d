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

// OrganizationInput is the writable surface of an organization.
type OrganizationInput struct {
	Name     string
	Slug     string
	Tagline  string
	Location string
}

func (in OrganizationInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Name is required.")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return invalid("Slug is required.")
	}
	return nil
}

// OrganizationService owns organization reads and writes. Writes notify the
// cache before returning so readers never see the pre-write payload.
type OrganizationService struct {
	Store    store.Store
	Notifier *MutationNotifier
}

func (s *OrganizationService) List(ctx context.Context) ([]domain.Organization, error) {
	return s.Store.Organizations().ListOrganizations(ctx)
}

func (s *OrganizationService) Get(ctx context.Context, id string) (domain.Organization, error) {
	return s.Store.Organizations().GetOrganizationByID(ctx, id)
}

func (s *OrganizationService) Create(ctx context.Context, actor domain.User, in OrganizationInput) (domain.Organization, error) {
	if err := in.validate(); err != nil {
		return domain.Organization{}, err
	}

	now := time.Now().UTC()
	org := domain.Organization{
		ID:        idx.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Slug:      strings.TrimSpace(in.Slug),
		Tagline:   in.Tagline,
		Location:  in.Location,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Organizations().CreateOrganization(ctx, org); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Organization{}, invalid("An organization with this slug already exists.")
		}
		return domain.Organization{}, err
	}

	s.Notifier.EntityChanged(ctx, cache.EntityOrganization)
	return org, nil
}

func (s *OrganizationService) Update(ctx context.Context, actor domain.User, id string, in OrganizationInput) (domain.Organization, error) {
	if err := in.validate(); err != nil {
		return domain.Organization{}, err
	}

	org, err := s.Store.Organizations().GetOrganizationByID(ctx, id)
	if err != nil {
		return domain.Organization{}, err
	}
	if org.CreatedBy != actor.ID && !actor.IsModerator() {
		return domain.Organization{}, ErrUnauthorized
	}

	org.Name = strings.TrimSpace(in.Name)
	org.Slug = strings.TrimSpace(in.Slug)
	org.Tagline = in.Tagline
	org.Location = in.Location
	org.UpdatedAt = time.Now().UTC()

	if err := s.Store.Organizations().UpdateOrganization(ctx, org); err != nil {
		return domain.Organization{}, err
	}

	s.Notifier.EntityChanged(ctx, cache.EntityOrganization)
	return org, nil
}

func (s *OrganizationService) Delete(ctx context.Context, actor domain.User, id string) error {
	org, err := s.Store.Organizations().GetOrganizationByID(ctx, id)
	if err != nil {
		return err
	}
	if org.CreatedBy != actor.ID && !actor.IsModerator() {
		return ErrUnauthorized
	}

	if err := s.Store.Organizations().DeleteOrganization(ctx, id); err != nil {
		return err
	}

	// Groups cascade with the organization, so both caches are stale now.
	s.Notifier.EntityChanged(ctx, cache.EntityOrganization)
	s.Notifier.EntityChanged(ctx, cache.EntityGroup)
	return nil
}

// GroupInput is the writable surface of a group.
type GroupInput struct {
	OrgID    string
	Name     string
	Slug     string
	Location string
}

func (in GroupInput) validate() error {
	if strings.TrimSpace(in.OrgID) == "" {
		return invalid("Organization ID is required.")
	}
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Name is required.")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return invalid("Slug is required.")
	}
	return nil
}

// GroupService owns group reads and writes.
type GroupService struct {
	Store    store.Store
	Notifier *MutationNotifier
}

func (s *GroupService) List(ctx context.Context) ([]domain.Group, error) {
	return s.Store.Groups().ListGroups(ctx)
}

func (s *GroupService) Get(ctx context.Context, id string) (domain.Group, error) {
	return s.Store.Groups().GetGroupByID(ctx, id)
}

func (s *GroupService) Create(ctx context.Context, actor domain.User, in GroupInput) (domain.Group, error) {
	if err := in.validate(); err != nil {
		return domain.Group{}, err
	}

	// The parent must exist; a dangling org_id would otherwise surface as an
	// opaque FK error.
	if _, err := s.Store.Organizations().GetOrganizationByID(ctx, in.OrgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Group{}, invalid("Organization does not exist.")
		}
		return domain.Group{}, err
	}

	now := time.Now().UTC()
	group := domain.Group{
		ID:        idx.New().String(),
		OrgID:     in.OrgID,
		Name:      strings.TrimSpace(in.Name),
		Slug:      strings.TrimSpace(in.Slug),
		Location:  in.Location,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Groups().CreateGroup(ctx, group); err != nil {
		return domain.Group{}, err
	}

	s.Notifier.EntityChanged(ctx, cache.EntityGroup)
	return group, nil
}

func (s *GroupService) Update(ctx context.Context, actor domain.User, id string, in GroupInput) (domain.Group, error) {
	if err := in.validate(); err != nil {
		return domain.Group{}, err
	}

	group, err := s.Store.Groups().GetGroupByID(ctx, id)
	if err != nil {
		return domain.Group{}, err
	}
	if group.CreatedBy != actor.ID && !actor.IsModerator() {
		return domain.Group{}, ErrUnauthorized
	}

	// A move to another organization needs the same parent check as create.
	if _, err := s.Store.Organizations().GetOrganizationByID(ctx, in.OrgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Group{}, invalid("Organization does not exist.")
		}
		return domain.Group{}, err
	}

	group.OrgID = in.OrgID
	group.Name = strings.TrimSpace(in.Name)
	group.Slug = strings.TrimSpace(in.Slug)
	group.Location = in.Location
	group.UpdatedAt = time.Now().UTC()

	if err := s.Store.Groups().UpdateGroup(ctx, group); err != nil {
		return domain.Group{}, err
	}

	s.Notifier.EntityChanged(ctx, cache.EntityGroup)
	return group, nil
}

func (s *GroupService) Delete(ctx context.Context, actor domain.User, id string) error {
	group, err := s.Store.Groups().GetGroupByID(ctx, id)
	if err != nil {
		return err
	}
	if group.CreatedBy != actor.ID && !actor.IsModerator() {
		return ErrUnauthorized
	}

	if err := s.Store.Groups().DeleteGroup(ctx, id); err != nil {
		return err
	}

	s.Notifier.EntityChanged(ctx, cache.EntityGroup)
	return nil
}
