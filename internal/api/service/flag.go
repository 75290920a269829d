package service

import (
	"context"
	"strings"
	"time"

	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/pkg/idx"
)

// FlagService owns moderation flags. Any signed-in user may raise a flag;
// only staff and admins may clear one.
type FlagService struct {
	Store store.Store
}

// Create records a flag against the target. The target is not checked for
// existence: a flag may outlive or predate the moderators' view of the
// entity, and the report itself is the signal.
func (s *FlagService) Create(ctx context.Context, actor domain.User, kind domain.FlagTarget, targetID string) (domain.Flag, error) {
	if !domain.ValidFlagTarget(kind) {
		return domain.Flag{}, invalid("Unknown flag target kind.")
	}
	if strings.TrimSpace(targetID) == "" {
		return domain.Flag{}, invalid("Target ID is required.")
	}

	flag := domain.Flag{
		ID:         idx.New().String(),
		TargetKind: kind,
		TargetID:   strings.TrimSpace(targetID),
		CreatedBy:  actor.ID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Store.Flags().CreateFlag(ctx, flag); err != nil {
		return domain.Flag{}, err
	}
	return flag, nil
}

// ListByKind returns every open flag for one target kind.
func (s *FlagService) ListByKind(ctx context.Context, kind domain.FlagTarget) ([]domain.Flag, error) {
	if !domain.ValidFlagTarget(kind) {
		return nil, invalid("Unknown flag target kind.")
	}
	return s.Store.Flags().ListFlagsByKind(ctx, kind)
}

// Delete clears a flag. Staff only; the flag's creator has no special claim
// on it once raised.
func (s *FlagService) Delete(ctx context.Context, actor domain.User, id string) error {
	if !actor.IsModerator() {
		return ErrUnauthorized
	}
	return s.Store.Flags().DeleteFlag(ctx, id)
}
