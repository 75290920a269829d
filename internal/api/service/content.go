package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/pkg/idx"
)

// Discussions and resources are served straight from the store; they change
// often and are cheap to read, so they bypass the response cache entirely.

type DiscussionInput struct {
	Title    string
	Category string
	OrgID    *string
}

func (in DiscussionInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("Title is required.")
	}
	return nil
}

type DiscussionService struct {
	Store store.Store
}

func (s *DiscussionService) List(ctx context.Context) ([]domain.Discussion, error) {
	return s.Store.Discussions().ListDiscussions(ctx)
}

func (s *DiscussionService) Get(ctx context.Context, id string) (domain.Discussion, error) {
	return s.Store.Discussions().GetDiscussionByID(ctx, id)
}

func (s *DiscussionService) Create(ctx context.Context, actor domain.User, in DiscussionInput) (domain.Discussion, error) {
	if err := in.validate(); err != nil {
		return domain.Discussion{}, err
	}
	if err := s.checkOrg(ctx, in.OrgID); err != nil {
		return domain.Discussion{}, err
	}

	now := time.Now().UTC()
	discussion := domain.Discussion{
		ID:        idx.New().String(),
		Title:     strings.TrimSpace(in.Title),
		Category:  in.Category,
		OrgID:     in.OrgID,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Discussions().CreateDiscussion(ctx, discussion); err != nil {
		return domain.Discussion{}, err
	}
	return discussion, nil
}

func (s *DiscussionService) Update(ctx context.Context, actor domain.User, id string, in DiscussionInput) (domain.Discussion, error) {
	if err := in.validate(); err != nil {
		return domain.Discussion{}, err
	}

	discussion, err := s.Store.Discussions().GetDiscussionByID(ctx, id)
	if err != nil {
		return domain.Discussion{}, err
	}
	if discussion.CreatedBy != actor.ID && !actor.IsModerator() {
		return domain.Discussion{}, ErrUnauthorized
	}
	if err := s.checkOrg(ctx, in.OrgID); err != nil {
		return domain.Discussion{}, err
	}

	discussion.Title = strings.TrimSpace(in.Title)
	discussion.Category = in.Category
	discussion.OrgID = in.OrgID
	discussion.UpdatedAt = time.Now().UTC()

	if err := s.Store.Discussions().UpdateDiscussion(ctx, discussion); err != nil {
		return domain.Discussion{}, err
	}
	return discussion, nil
}

func (s *DiscussionService) Delete(ctx context.Context, actor domain.User, id string) error {
	discussion, err := s.Store.Discussions().GetDiscussionByID(ctx, id)
	if err != nil {
		return err
	}
	if discussion.CreatedBy != actor.ID && !actor.IsModerator() {
		return ErrUnauthorized
	}
	return s.Store.Discussions().DeleteDiscussion(ctx, id)
}

func (s *DiscussionService) checkOrg(ctx context.Context, orgID *string) error {
	if orgID == nil {
		return nil
	}
	if _, err := s.Store.Organizations().GetOrganizationByID(ctx, *orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid("Organization does not exist.")
		}
		return err
	}
	return nil
}

type ResourceInput struct {
	Name        string
	Description string
	URL         string
	OrgID       *string
}

func (in ResourceInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Name is required.")
	}
	if strings.TrimSpace(in.URL) == "" {
		return invalid("URL is required.")
	}
	return nil
}

type ResourceService struct {
	Store store.Store
}

func (s *ResourceService) List(ctx context.Context) ([]domain.Resource, error) {
	return s.Store.Resources().ListResources(ctx)
}

// ListOrganizationResources returns only the resources attached to an
// organization.
func (s *ResourceService) ListOrganizationResources(ctx context.Context) ([]domain.Resource, error) {
	return s.Store.Resources().ListOrganizationResources(ctx)
}

func (s *ResourceService) Get(ctx context.Context, id string) (domain.Resource, error) {
	return s.Store.Resources().GetResourceByID(ctx, id)
}

func (s *ResourceService) Create(ctx context.Context, actor domain.User, in ResourceInput) (domain.Resource, error) {
	if err := in.validate(); err != nil {
		return domain.Resource{}, err
	}
	if err := s.checkOrg(ctx, in.OrgID); err != nil {
		return domain.Resource{}, err
	}

	now := time.Now().UTC()
	resource := domain.Resource{
		ID:          idx.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		URL:         strings.TrimSpace(in.URL),
		OrgID:       in.OrgID,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Resources().CreateResource(ctx, resource); err != nil {
		return domain.Resource{}, err
	}
	return resource, nil
}

func (s *ResourceService) Update(ctx context.Context, actor domain.User, id string, in ResourceInput) (domain.Resource, error) {
	if err := in.validate(); err != nil {
		return domain.Resource{}, err
	}

	resource, err := s.Store.Resources().GetResourceByID(ctx, id)
	if err != nil {
		return domain.Resource{}, err
	}
	if resource.CreatedBy != actor.ID && !actor.IsModerator() {
		return domain.Resource{}, ErrUnauthorized
	}
	if err := s.checkOrg(ctx, in.OrgID); err != nil {
		return domain.Resource{}, err
	}

	resource.Name = strings.TrimSpace(in.Name)
	resource.Description = in.Description
	resource.URL = strings.TrimSpace(in.URL)
	resource.OrgID = in.OrgID
	resource.UpdatedAt = time.Now().UTC()

	if err := s.Store.Resources().UpdateResource(ctx, resource); err != nil {
		return domain.Resource{}, err
	}
	return resource, nil
}

func (s *ResourceService) Delete(ctx context.Context, actor domain.User, id string) error {
	resource, err := s.Store.Resources().GetResourceByID(ctx, id)
	if err != nil {
		return err
	}
	if resource.CreatedBy != actor.ID && !actor.IsModerator() {
		return ErrUnauthorized
	}
	return s.Store.Resources().DeleteResource(ctx, id)
}

func (s *ResourceService) checkOrg(ctx context.Context, orgID *string) error {
	if orgID == nil {
		return nil
	}
	if _, err := s.Store.Organizations().GetOrganizationByID(ctx, *orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid("Organization does not exist.")
		}
		return err
	}
	return nil
}
