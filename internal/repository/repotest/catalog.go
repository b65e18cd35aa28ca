package repotest

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
)

type templateRepo struct{ s *Store }

func (r templateRepo) Create(_ context.Context, tpl *model.Template) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&tpl.ID, &tpl.CreatedAt, &tpl.UpdatedAt)
	cp := *tpl
	r.s.templates[tpl.ID] = &cp
	return nil
}

func (r templateRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Template, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tpl, ok := r.s.templates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *tpl
	return &cp, nil
}

func (r templateRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	tpl, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tpl.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return tpl, nil
}

func (r templateRepo) ListActive(
	_ context.Context, filter repository.TemplateFilter, page repository.Pagination,
) ([]model.Template, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []model.Template
	for _, tpl := range r.s.templates {
		if !tpl.IsActive {
			continue
		}
		if filter.Category != nil && tpl.Category != *filter.Category {
			continue
		}
		if filter.IsPremium != nil && tpl.IsPremium != *filter.IsPremium {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(tpl.Name), search) &&
			!strings.Contains(strings.ToLower(tpl.Description), search) {
			continue
		}
		out = append(out, *tpl)
	}

	ordering := filter.Ordering
	if !repository.ValidTemplateOrdering(ordering) {
		ordering = repository.DefaultTemplateOrdering
	}
	desc := strings.HasPrefix(ordering, "-")
	byUsage := strings.TrimPrefix(ordering, "-") == "usage_count"
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if desc {
			a, b = b, a
		}
		if byUsage {
			return a.UsageCount < b.UsageCount
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return paginate(out, page), int64(len(out)), nil
}

func (r templateRepo) Update(_ context.Context, tpl *model.Template) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.templates[tpl.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	tpl.UpdatedAt = time.Now().UTC()
	cp := *tpl
	r.s.templates[tpl.ID] = &cp
	return nil
}

func (r templateRepo) IncrementUsageCount(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if tpl, ok := r.s.templates[id]; ok {
		tpl.UsageCount++
	}
	return nil
}
