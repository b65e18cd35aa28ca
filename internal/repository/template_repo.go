package repository

import (
	"context"

	"github.com/google/uuid"

	"ourhour/weddinghub/internal/model"
)

// TemplateFilter narrows the public template catalog.
type TemplateFilter struct {
	Category  *model.TemplateCategory
	IsPremium *bool
	Search    string
	Ordering  string
}

var templateOrderings = map[string]string{
	"created_at":   "created_at ASC",
	"-created_at":  "created_at DESC",
	"usage_count":  "usage_count ASC",
	"-usage_count": "usage_count DESC",
}

const DefaultTemplateOrdering = "-created_at"

// ValidTemplateOrdering reports whether o is an accepted ordering key.
func ValidTemplateOrdering(o string) bool {
	_, ok := templateOrderings[o]
	return ok
}

type TemplateRepository interface {
	Create(ctx context.Context, tpl *model.Template) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Template, error)
	ListActive(ctx context.Context, filter TemplateFilter, page Pagination) ([]model.Template, int64, error)
	Update(ctx context.Context, tpl *model.Template) error
	IncrementUsageCount(ctx context.Context, id uuid.UUID) error
}
