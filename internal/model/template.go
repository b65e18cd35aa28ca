package model

import (
	"time"

	"github.com/google/uuid"
)

type TemplateCategory string

const (
	TemplateCategoryModern   TemplateCategory = "MODERN"
	TemplateCategoryClassic  TemplateCategory = "CLASSIC"
	TemplateCategoryFloral   TemplateCategory = "FLORAL"
	TemplateCategoryMinimal  TemplateCategory = "MINIMAL"
	TemplateCategoryRomantic TemplateCategory = "ROMANTIC"
)

func (c TemplateCategory) Valid() bool {
	switch c {
	case TemplateCategoryModern, TemplateCategoryClassic, TemplateCategoryFloral,
		TemplateCategoryMinimal, TemplateCategoryRomantic:
		return true
	}
	return false
}

type Template struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string           `gorm:"type:varchar(100);not null" json:"name"`
	Description  string           `gorm:"type:text;not null;default:''" json:"description"`
	ThumbnailURL string           `gorm:"type:varchar(500);not null" json:"thumbnail_url"`
	PreviewURL   string           `gorm:"type:varchar(500);not null;default:''" json:"preview_url"`
	Category     TemplateCategory `gorm:"type:varchar(50);not null;index" json:"category"`
	IsPremium    bool             `gorm:"not null;default:false" json:"is_premium"`
	IsActive     bool             `gorm:"not null;index" json:"is_active"`
	UsageCount   int              `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (Template) TableName() string { return "templates" }

// TemplateSummary is the list form of a template.
type TemplateSummary struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	ThumbnailURL string           `json:"thumbnail_url"`
	Category     TemplateCategory `json:"category"`
	IsPremium    bool             `json:"is_premium"`
	UsageCount   int              `json:"usage_count"`
}

func (t *Template) Summary() *TemplateSummary {
	if t == nil {
		return nil
	}
	return &TemplateSummary{
		ID:           t.ID,
		Name:         t.Name,
		ThumbnailURL: t.ThumbnailURL,
		Category:     t.Category,
		IsPremium:    t.IsPremium,
		UsageCount:   t.UsageCount,
	}
}
