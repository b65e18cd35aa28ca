package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
	"ourhour/weddinghub/internal/repository/repotest"
	"ourhour/weddinghub/internal/service"
)

func newGuestbookService(store *repotest.Store) service.GuestbookService {
	return service.NewGuestbookService(store.Invitations(), store.Guestbooks())
}

func TestGuestbookListingsReturnOnlyPublicEntries(t *testing.T) {
	store := repotest.NewStore()
	inv := seedInvitation(t, store, uuid.New(), nil)
	svc := newGuestbookService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, inv.ID, service.GuestbookInput{AuthorName: "민지", Message: "축하해요!"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, inv.ID, service.GuestbookInput{
		AuthorName: "준호",
		Message:    "비밀 메시지",
		Phone:      "010-9999-0000",
		IsPublic:   ptr(false),
	})
	require.NoError(t, err)

	byID, total, err := svc.ListByInvitation(ctx, inv.ID, repository.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, byID, 1)
	assert.Equal(t, "민지", byID[0].AuthorName)

	bySlug, _, err := svc.ListBySlug(ctx, inv.URLSlug, repository.Pagination{})
	require.NoError(t, err)
	require.Len(t, bySlug, 1)
	assert.True(t, bySlug[0].IsPublic)
}

func TestGuestbookCreateRequiresEnabledFeature(t *testing.T) {
	store := repotest.NewStore()
	inv := seedInvitation(t, store, uuid.New(), func(inv *model.Invitation) { inv.EnableGuestbook = false })

	_, err := newGuestbookService(store).Create(context.Background(), inv.ID, service.GuestbookInput{
		AuthorName: "민지",
		Message:    "축하해요!",
	})
	assert.ErrorIs(t, err, service.ErrFeatureDisabled)
	assert.ErrorIs(t, err, service.ErrGuestbookDisabled)
}

func TestGuestbookCreateRequiresPublishedInvitation(t *testing.T) {
	store := repotest.NewStore()
	inv := seedInvitation(t, store, uuid.New(), func(inv *model.Invitation) {
		inv.Status = model.InvitationStatusDraft
	})

	_, err := newGuestbookService(store).Create(context.Background(), inv.ID, service.GuestbookInput{
		AuthorName: "민지",
		Message:    "축하해요!",
	})
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)
}

func TestGuestbookListBySlugHidesPrivateInvitation(t *testing.T) {
	store := repotest.NewStore()
	inv := seedInvitation(t, store, uuid.New(), func(inv *model.Invitation) { inv.IsPublic = false })

	_, _, err := newGuestbookService(store).ListBySlug(context.Background(), inv.URLSlug, repository.Pagination{})
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)
}

func TestGuestbookDeleteIsOwnerOnly(t *testing.T) {
	store := repotest.NewStore()
	owner := uuid.New()
	inv := seedInvitation(t, store, owner, nil)
	svc := newGuestbookService(store)
	ctx := context.Background()

	entry, err := svc.Create(ctx, inv.ID, service.GuestbookInput{AuthorName: "민지", Message: "축하해요!"})
	require.NoError(t, err)

	err = svc.Delete(ctx, uuid.New(), inv.ID, entry.ID)
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)

	require.NoError(t, svc.Delete(ctx, owner, inv.ID, entry.ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner, inv.ID, entry.ID), service.ErrGuestbookNotFound)
}
