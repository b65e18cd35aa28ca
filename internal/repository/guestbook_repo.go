package repository

import (
	"context"

	"github.com/google/uuid"

	"ourhour/weddinghub/internal/model"
)

type GuestbookRepository interface {
	Create(ctx context.Context, entry *model.Guestbook) error
	ListPublic(ctx context.Context, invitationID uuid.UUID, page Pagination) ([]model.Guestbook, int64, error)
	Delete(ctx context.Context, id, invitationID uuid.UUID) (bool, error)
}
