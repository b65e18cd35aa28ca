package repository

import (
	"context"

	"github.com/google/uuid"

	"ourhour/weddinghub/internal/model"
)

// InvitationRepository scopes every lookup by its visibility predicate in the
// same query, so "not yours" and "not visible" are indistinguishable from
// "absent" (gorm.ErrRecordNotFound).
type InvitationRepository interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.Invitation, error)
	GetPublished(ctx context.Context, id uuid.UUID) (*model.Invitation, error)
	GetPublicBySlug(ctx context.Context, slug string) (*model.Invitation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page Pagination) ([]model.Invitation, int64, error)
	Update(ctx context.Context, inv *model.Invitation) error
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}
