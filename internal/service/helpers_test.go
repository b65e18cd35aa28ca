package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository/repotest"
)

func ptr[T any](v T) *T { return &v }

// seedInvitation stores a public, published invitation owned by owner and
// lets mutate adjust it first.
func seedInvitation(t *testing.T, store *repotest.Store, owner uuid.UUID, mutate func(*model.Invitation)) *model.Invitation {
	t.Helper()
	now := time.Now().UTC()
	inv := &model.Invitation{
		UserID:          owner,
		Title:           "철수 ♥ 영희",
		URLSlug:         uuid.NewString()[:12],
		Status:          model.InvitationStatusPublished,
		GroomName:       "김철수",
		BrideName:       "이영희",
		WeddingDate:     now.AddDate(0, 2, 0),
		EnableRSVP:      true,
		EnableGuestbook: true,
		IsPublic:        true,
		PlanType:        model.PlanTypeFree,
		PublishedAt:     &now,
	}
	if mutate != nil {
		mutate(inv)
	}
	require.NoError(t, store.Invitations().Create(context.Background(), inv))
	return inv
}

func seedTemplate(t *testing.T, store *repotest.Store, mutate func(*model.Template)) *model.Template {
	t.Helper()
	tpl := &model.Template{
		Name:         "Spring Garden",
		Description:  "pastel florals",
		ThumbnailURL: "https://cdn.example.com/spring.png",
		Category:     model.TemplateCategoryFloral,
		IsActive:     true,
	}
	if mutate != nil {
		mutate(tpl)
	}
	require.NoError(t, store.Templates().Create(context.Background(), tpl))
	return tpl
}
