package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourhour/weddinghub/internal/model"
)

type pgTemplateRepository struct {
	db *gorm.DB
}

func NewPGTemplateRepository(db *gorm.DB) TemplateRepository {
	return &pgTemplateRepository{db: db}
}

func (r *pgTemplateRepository) Create(ctx context.Context, tpl *model.Template) error {
	return conn(ctx, r.db).Create(tpl).Error
}

func (r *pgTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	var tpl model.Template
	if err := conn(ctx, r.db).First(&tpl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *pgTemplateRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	var tpl model.Template
	if err := conn(ctx, r.db).First(&tpl, "id = ? AND is_active = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *pgTemplateRepository) ListActive(
	ctx context.Context, filter TemplateFilter, page Pagination,
) ([]model.Template, int64, error) {
	q := conn(ctx, r.db).Model(&model.Template{}).Where("is_active = ?", true)
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.IsPremium != nil {
		q = q.Where("is_premium = ?", *filter.IsPremium)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + escapeLike(s) + "%"
		q = q.Where("(name ILIKE ? OR description ILIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := templateOrderings[filter.Ordering]
	if !ok {
		order = templateOrderings[DefaultTemplateOrdering]
	}

	var templates []model.Template
	err := q.Order(order).Offset(page.Offset()).Limit(page.Limit()).Find(&templates).Error
	return templates, total, err
}

func (r *pgTemplateRepository) Update(ctx context.Context, tpl *model.Template) error {
	return conn(ctx, r.db).Save(tpl).Error
}

func (r *pgTemplateRepository) IncrementUsageCount(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).
		Model(&model.Template{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).
		Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
