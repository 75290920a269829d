package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/store"
)

func TestFlagLifecycle(t *testing.T) {
	st := newTestStore(t)
	svc := &FlagService{Store: st}
	ctx := context.Background()

	reporter := seedUser(t, st, "reporter", false)
	staff := seedUser(t, st, "staff", true)

	flag, err := svc.Create(ctx, reporter, domain.FlagTargetOrganization, "some-org-id")
	require.NoError(t, err)
	require.Equal(t, reporter.ID, flag.CreatedBy)

	flags, err := svc.ListByKind(ctx, domain.FlagTargetOrganization)
	require.NoError(t, err)
	require.Len(t, flags, 1)

	// Other kinds stay empty.
	flags, err = svc.ListByKind(ctx, domain.FlagTargetEvent)
	require.NoError(t, err)
	require.Empty(t, flags)

	// The reporter cannot clear their own flag; staff can.
	require.ErrorIs(t, svc.Delete(ctx, reporter, flag.ID), ErrUnauthorized)
	require.NoError(t, svc.Delete(ctx, staff, flag.ID))

	require.ErrorIs(t, svc.Delete(ctx, staff, flag.ID), store.ErrNotFound)
}

func TestFlagRejectsUnknownKind(t *testing.T) {
	st := newTestStore(t)
	svc := &FlagService{Store: st}
	ctx := context.Background()
	reporter := seedUser(t, st, "reporter", false)

	_, err := svc.Create(ctx, reporter, domain.FlagTarget("gadget"), "id")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = svc.ListByKind(ctx, domain.FlagTarget("gadget"))
	require.ErrorAs(t, err, &ve)
}
