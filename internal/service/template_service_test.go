package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
	"ourhour/weddinghub/internal/repository/repotest"
	"ourhour/weddinghub/internal/service"
)

func TestTemplateListFiltersActiveCatalog(t *testing.T) {
	store := repotest.NewStore()
	base := time.Now().Add(-time.Hour)
	seedTemplate(t, store, func(tpl *model.Template) {
		tpl.Name, tpl.CreatedAt, tpl.UsageCount = "Classic Ivory", base, 10
		tpl.Category = model.TemplateCategoryClassic
	})
	seedTemplate(t, store, func(tpl *model.Template) {
		tpl.Name, tpl.CreatedAt, tpl.UsageCount = "Rose Premium", base.Add(time.Minute), 3
		tpl.Category = model.TemplateCategoryRomantic
		tpl.IsPremium = true
	})
	seedTemplate(t, store, func(tpl *model.Template) {
		tpl.Name = "Retired"
		tpl.IsActive = false
	})
	svc := service.NewTemplateService(store.Templates())
	ctx := context.Background()

	all, total, err := svc.List(ctx, repository.TemplateFilter{Ordering: "bogus"}, repository.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	// default ordering is newest first
	assert.Equal(t, "Rose Premium", all[0].Name)

	byUsage, _, err := svc.List(ctx, repository.TemplateFilter{Ordering: "-usage_count"}, repository.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, "Classic Ivory", byUsage[0].Name)

	premium, _, err := svc.List(ctx, repository.TemplateFilter{IsPremium: ptr(true)}, repository.Pagination{})
	require.NoError(t, err)
	require.Len(t, premium, 1)
	assert.Equal(t, "Rose Premium", premium[0].Name)

	found, _, err := svc.List(ctx, repository.TemplateFilter{Search: "IVORY"}, repository.Pagination{})
	require.NoError(t, err)
	require.Len(t, found, 1)

	bad := model.TemplateCategory("NEON")
	_, _, err = svc.List(ctx, repository.TemplateFilter{Category: &bad}, repository.Pagination{})
	assert.ErrorIs(t, err, service.ErrInvalidCategory)
}

func TestTemplateGetHidesInactive(t *testing.T) {
	store := repotest.NewStore()
	tpl := seedTemplate(t, store, nil)
	svc := service.NewTemplateService(store.Templates())
	ctx := context.Background()

	_, err := svc.Get(ctx, tpl.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, tpl.ID, service.UpdateTemplateInput{IsActive: ptr(false)})
	require.NoError(t, err)

	_, err = svc.Get(ctx, tpl.ID)
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)
}

func TestTemplateCreateDefaultsToActive(t *testing.T) {
	svc := service.NewTemplateService(repotest.NewStore().Templates())

	tpl, err := svc.Create(context.Background(), service.CreateTemplateInput{
		Name:         "Minimal White",
		ThumbnailURL: "https://cdn.example.com/min.png",
		Category:     model.TemplateCategoryMinimal,
	})
	require.NoError(t, err)
	assert.True(t, tpl.IsActive)

	_, err = svc.Create(context.Background(), service.CreateTemplateInput{Name: "x", Category: "NEON"})
	assert.ErrorIs(t, err, service.ErrInvalidCategory)
}
