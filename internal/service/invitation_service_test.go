package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
	"ourhour/weddinghub/internal/repository/repotest"
	"ourhour/weddinghub/internal/service"
)

func newInvitationService(store *repotest.Store, opts ...service.InvitationOption) service.InvitationService {
	return service.NewInvitationService(store.Transactor(), store.Invitations(), store.Templates(), opts...)
}

func TestPublishAllocatesSlugWhenEmpty(t *testing.T) {
	store := repotest.NewStore()
	owner := uuid.New()
	draft := seedInvitation(t, store, owner, func(inv *model.Invitation) {
		inv.URLSlug = ""
		inv.Status = model.InvitationStatusDraft
		inv.PublishedAt = nil
	})
	other := seedInvitation(t, store, owner, nil)

	svc := newInvitationService(store)
	published, err := svc.Publish(context.Background(), owner, draft.ID)
	require.NoError(t, err)

	assert.Len(t, published.URLSlug, 12)
	assert.NotEqual(t, other.URLSlug, published.URLSlug)
	assert.Equal(t, model.InvitationStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	stored := store.Invitation(draft.ID)
	assert.Equal(t, published.URLSlug, stored.URLSlug)
	assert.Equal(t, model.InvitationStatusPublished, stored.Status)
	assert.Equal(t, 1, store.Transactions)
}

func TestPublishPreservesSlugAndRefreshesPublishedAt(t *testing.T) {
	store := repotest.NewStore()
	owner := uuid.New()
	inv := seedInvitation(t, store, owner, func(inv *model.Invitation) {
		inv.URLSlug = "keepthisslug"
		inv.Status = model.InvitationStatusDraft
	})

	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := newInvitationService(store, service.WithClock(func() time.Time { return clock }))

	first, err := svc.Publish(context.Background(), owner, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "keepthisslug", first.URLSlug)
	assert.Equal(t, clock, *first.PublishedAt)

	clock = clock.Add(time.Hour)
	second, err := svc.Publish(context.Background(), owner, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "keepthisslug", second.URLSlug)
	assert.Equal(t, clock, *second.PublishedAt)
	assert.Equal(t, 0, store.SlugChecks)
}

func TestOwnerOnlyOperationsHideForeignInvitations(t *testing.T) {
	store := repotest.NewStore()
	owner, stranger := uuid.New(), uuid.New()
	inv := seedInvitation(t, store, owner, nil)
	svc := newInvitationService(store)
	ctx := context.Background()

	_, err := svc.Get(ctx, stranger, inv.ID)
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)

	_, err = svc.Update(ctx, stranger, inv.ID, service.InvitationFields{Title: ptr("hijack")})
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)

	_, err = svc.Publish(ctx, stranger, inv.ID)
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, stranger, inv.ID), service.ErrInvitationNotFound)
	assert.NotNil(t, store.Invitation(inv.ID))
}

func TestGenerateUniqueSlugSkipsSeededCollisions(t *testing.T) {
	store := repotest.NewStore()
	owner := uuid.New()
	var candidates []string
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("slug%08d", i))
	}
	// every candidate but the last is already taken
	for _, slug := range candidates[:9] {
		slug := slug
		seedInvitation(t, store, owner, func(inv *model.Invitation) { inv.URLSlug = slug })
	}

	next := 0
	svc := newInvitationService(store, service.WithSlugSource(func() string {
		s := candidates[next]
		next++
		return s
	}))

	slug, err := svc.GenerateUniqueSlug(context.Background())
	require.NoError(t, err)
	assert.Equal(t, candidates[9], slug)
	assert.Equal(t, 10, store.SlugChecks)
}

func TestGenerateUniqueSlugFallsBackAfterRetryBound(t *testing.T) {
	store := repotest.NewStore()
	store.SlugExistsHook = func(string) bool { return true }
	clock := time.Unix(1767225600, 0)

	svc := newInvitationService(store, service.WithClock(func() time.Time { return clock }))
	slug, err := svc.GenerateUniqueSlug(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inv-1767225600", slug)
	assert.Equal(t, 10, store.SlugChecks)
}

func TestGetPublicBySlugRequiresPublishedAndPublic(t *testing.T) {
	store := repotest.NewStore()
	owner := uuid.New()
	draft := seedInvitation(t, store, owner, func(inv *model.Invitation) {
		inv.Status = model.InvitationStatusDraft
	})
	private := seedInvitation(t, store, owner, func(inv *model.Invitation) {
		inv.IsPublic = false
	})
	svc := newInvitationService(store)
	ctx := context.Background()

	_, err := svc.GetPublicBySlug(ctx, draft.URLSlug)
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)

	_, err = svc.GetPublicBySlug(ctx, private.URLSlug)
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)

	_, err = svc.GetPublicBySlug(ctx, "no-such-slug")
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)

	assert.Zero(t, store.Invitation(draft.ID).ViewCount)
	assert.Zero(t, store.Invitation(private.ID).ViewCount)
}

func TestGetPublicBySlugCountsEveryView(t *testing.T) {
	store := repotest.NewStore()
	inv := seedInvitation(t, store, uuid.New(), func(inv *model.Invitation) { inv.ViewCount = 7 })
	svc := newInvitationService(store)

	const n = 5
	for i := 1; i <= n; i++ {
		got, err := svc.GetPublicBySlug(context.Background(), inv.URLSlug)
		require.NoError(t, err)
		assert.Equal(t, 7+i, got.ViewCount)
	}
	assert.Equal(t, 7+n, store.Invitation(inv.ID).ViewCount)
}

func TestCreateAppliesDefaultsAndCountsTemplateUsage(t *testing.T) {
	store := repotest.NewStore()
	tpl := seedTemplate(t, store, nil)
	owner := uuid.New()
	svc := newInvitationService(store)

	inv, err := svc.Create(context.Background(), owner, service.InvitationFields{
		TemplateID:  &tpl.ID,
		Title:       ptr("우리 결혼합니다"),
		GroomName:   ptr("김철수"),
		BrideName:   ptr("이영희"),
		WeddingDate: ptr(time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)),
		EnableRSVP:  ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, owner, inv.UserID)
	assert.Equal(t, model.InvitationStatusDraft, inv.Status)
	assert.Len(t, inv.URLSlug, 12)
	assert.False(t, inv.EnableRSVP)
	assert.True(t, inv.EnableGuestbook)
	assert.True(t, inv.IsPublic)
	assert.False(t, inv.EnableAccountTransfer)
	assert.Equal(t, "#FFFFFF", inv.BackgroundColor)
	assert.Equal(t, "default", inv.FontFamily)
	assert.Equal(t, model.PlanTypeFree, inv.PlanType)
	assert.Nil(t, inv.PublishedAt)

	require.NotNil(t, inv.Template)
	assert.Equal(t, 1, inv.Template.UsageCount)
	assert.Equal(t, 1, store.Template(tpl.ID).UsageCount)
}

func TestCreateRejectsInactiveTemplate(t *testing.T) {
	store := repotest.NewStore()
	tpl := seedTemplate(t, store, func(tpl *model.Template) { tpl.IsActive = false })
	svc := newInvitationService(store)

	_, err := svc.Create(context.Background(), uuid.New(), service.InvitationFields{
		TemplateID:  &tpl.ID,
		Title:       ptr("t"),
		GroomName:   ptr("g"),
		BrideName:   ptr("b"),
		WeddingDate: ptr(time.Now()),
	})
	assert.ErrorIs(t, err, service.ErrTemplateUnavailable)
	assert.Zero(t, store.Template(tpl.ID).UsageCount)
}

func TestUpdateIsPartial(t *testing.T) {
	store := repotest.NewStore()
	owner := uuid.New()
	inv := seedInvitation(t, store, owner, func(inv *model.Invitation) {
		inv.GreetingMessage = "hello"
		inv.ViewCount = 3
	})
	svc := newInvitationService(store)

	updated, err := svc.Update(context.Background(), owner, inv.ID, service.InvitationFields{
		Title:    ptr("새 제목"),
		IsPublic: ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "새 제목", updated.Title)
	assert.False(t, updated.IsPublic)
	assert.Equal(t, "hello", updated.GreetingMessage)
	assert.Equal(t, inv.URLSlug, updated.URLSlug)
	assert.Equal(t, model.InvitationStatusPublished, updated.Status)
	assert.Equal(t, 3, updated.ViewCount)
}

func TestDeleteCascadesGuestData(t *testing.T) {
	store := repotest.NewStore()
	owner := uuid.New()
	inv := seedInvitation(t, store, owner, nil)
	ctx := context.Background()

	_, err := store.RSVPs().Reconcile(ctx, &model.RSVP{InvitationID: inv.ID, GuestName: "a", GuestCount: 1})
	require.NoError(t, err)

	svc := newInvitationService(store)
	require.NoError(t, svc.Delete(ctx, owner, inv.ID))
	assert.Nil(t, store.Invitation(inv.ID))
	assert.Zero(t, store.RSVPCount(inv.ID))

	assert.ErrorIs(t, svc.Delete(ctx, owner, inv.ID), service.ErrInvitationNotFound)
}

func TestListReturnsOnlyCallersInvitations(t *testing.T) {
	store := repotest.NewStore()
	owner := uuid.New()
	for i := 0; i < 3; i++ {
		seedInvitation(t, store, owner, nil)
	}
	seedInvitation(t, store, uuid.New(), nil)

	svc := newInvitationService(store)
	items, total, err := svc.List(context.Background(), owner, repository.Pagination{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)
	for _, inv := range items {
		assert.Equal(t, owner, inv.UserID)
	}
}
