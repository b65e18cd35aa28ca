package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ourhour/weddinghub/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
