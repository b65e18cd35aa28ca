package repository

import (
	"context"

	"github.com/google/uuid"

	"ourhour/weddinghub/internal/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	// GetByOrderIDForUpdate row-locks the payment when called inside a transaction.
	GetByOrderIDForUpdate(ctx context.Context, orderID string) (*model.Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page Pagination) ([]model.Payment, int64, error)
	Update(ctx context.Context, payment *model.Payment) error
	// MarkInvitationPaid applies a completed plan purchase to its invitation.
	MarkInvitationPaid(ctx context.Context, invitationID uuid.UUID, plan model.PlanType) error
}
