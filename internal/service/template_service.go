package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
)

type CreateTemplateInput struct {
	Name         string
	Description  string
	ThumbnailURL string
	PreviewURL   string
	Category     model.TemplateCategory
	IsPremium    bool
	IsActive     *bool
}

// UpdateTemplateInput is a partial update; nil fields are left unchanged.
type UpdateTemplateInput struct {
	Name         *string
	Description  *string
	ThumbnailURL *string
	PreviewURL   *string
	Category     *model.TemplateCategory
	IsPremium    *bool
	IsActive     *bool
}

type TemplateService interface {
	List(ctx context.Context, filter repository.TemplateFilter, page repository.Pagination) ([]model.Template, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Template, error)
	Create(ctx context.Context, input CreateTemplateInput) (*model.Template, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTemplateInput) (*model.Template, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

func (s *templateService) List(
	ctx context.Context, filter repository.TemplateFilter, page repository.Pagination,
) ([]model.Template, int64, error) {
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, 0, ErrInvalidCategory
	}
	if !repository.ValidTemplateOrdering(filter.Ordering) {
		filter.Ordering = repository.DefaultTemplateOrdering
	}
	templates, total, err := s.templateRepo.ListActive(ctx, filter, page.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, total, nil
}

// Get returns an active template; inactive ones are hidden from the catalog.
func (s *templateService) Get(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	tpl, err := s.templateRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return tpl, nil
}

func (s *templateService) Create(ctx context.Context, input CreateTemplateInput) (*model.Template, error) {
	if !input.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	tpl := &model.Template{
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		PreviewURL:   input.PreviewURL,
		Category:     input.Category,
		IsPremium:    input.IsPremium,
		IsActive:     true,
	}
	if input.IsActive != nil {
		tpl.IsActive = *input.IsActive
	}
	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return tpl, nil
}

func (s *templateService) Update(ctx context.Context, id uuid.UUID, input UpdateTemplateInput) (*model.Template, error) {
	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}

	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, ErrInvalidCategory
		}
		tpl.Category = *input.Category
	}
	if input.Name != nil {
		tpl.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		tpl.Description = *input.Description
	}
	if input.ThumbnailURL != nil {
		tpl.ThumbnailURL = *input.ThumbnailURL
	}
	if input.PreviewURL != nil {
		tpl.PreviewURL = *input.PreviewURL
	}
	if input.IsPremium != nil {
		tpl.IsPremium = *input.IsPremium
	}
	if input.IsActive != nil {
		tpl.IsActive = *input.IsActive
	}

	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return tpl, nil
}

var _ TemplateService = (*templateService)(nil)
