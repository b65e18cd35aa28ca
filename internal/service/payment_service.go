package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourhour/weddinghub/internal/metrics"
	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
	"ourhour/weddinghub/pkg/crypto"
)

// PlanPrices maps each purchasable plan to its amount in KRW.
type PlanPrices map[model.PlanType]int64

type CreatePaymentInput struct {
	InvitationID  uuid.UUID
	PlanType      model.PlanType
	PaymentMethod string
}

// PaymentStatusUpdate moves a payment to Status. PaymentKey applies to
// COMPLETED, RefundReason to REFUNDED.
type PaymentStatusUpdate struct {
	Status       model.PaymentStatus
	PaymentKey   string
	RefundReason string
}

type PaymentService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreatePaymentInput) (*model.Payment, error)
	List(ctx context.Context, userID uuid.UUID, page repository.Pagination) ([]model.Payment, int64, error)
	UpdateStatus(ctx context.Context, orderID string, update PaymentStatusUpdate) (*model.Payment, error)
}

type paymentService struct {
	tx             repository.Transactor
	paymentRepo    repository.PaymentRepository
	invitationRepo repository.InvitationRepository
	prices         PlanPrices
	now            func() time.Time
}

func NewPaymentService(
	tx repository.Transactor,
	paymentRepo repository.PaymentRepository,
	invitationRepo repository.InvitationRepository,
	prices PlanPrices,
) PaymentService {
	return &paymentService{
		tx:             tx,
		paymentRepo:    paymentRepo,
		invitationRepo: invitationRepo,
		prices:         prices,
		now:            time.Now,
	}
}

func (s *paymentService) Create(ctx context.Context, userID uuid.UUID, input CreatePaymentInput) (*model.Payment, error) {
	amount, ok := s.prices[input.PlanType]
	if !ok || input.PlanType == model.PlanTypeFree {
		return nil, ErrInvalidPlan
	}

	if _, err := s.invitationRepo.GetOwned(ctx, input.InvitationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	orderID, err := crypto.GenerateOrderID()
	if err != nil {
		return nil, err
	}
	payment := &model.Payment{
		UserID:        userID,
		InvitationID:  input.InvitationID,
		OrderID:       orderID,
		Amount:        amount,
		PlanType:      input.PlanType,
		PaymentMethod: input.PaymentMethod,
		Status:        model.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) List(
	ctx context.Context, userID uuid.UUID, page repository.Pagination,
) ([]model.Payment, int64, error) {
	payments, total, err := s.paymentRepo.ListByUser(ctx, userID, page.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, total, nil
}

// UpdateStatus applies a status transition. Completing a payment marks its
// invitation paid in the same transaction.
func (s *paymentService) UpdateStatus(ctx context.Context, orderID string, update PaymentStatusUpdate) (*model.Payment, error) {
	var payment *model.Payment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.paymentRepo.GetByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("failed to find payment: %w", err)
		}
		if !payment.Status.CanTransition(update.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidPaymentTransition, payment.Status, update.Status)
		}

		now := s.now().UTC()
		payment.Status = update.Status
		switch update.Status {
		case model.PaymentStatusCompleted:
			payment.PaidAt = &now
			payment.PaymentKey = update.PaymentKey
		case model.PaymentStatusRefunded:
			payment.RefundedAt = &now
			payment.RefundReason = update.RefundReason
		}

		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		if update.Status == model.PaymentStatusCompleted {
			if err := s.paymentRepo.MarkInvitationPaid(ctx, payment.InvitationID, payment.PlanType); err != nil {
				return fmt.Errorf("failed to apply plan: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordPaymentTransition(string(payment.Status))
	return payment, nil
}

var _ PaymentService = (*paymentService)(nil)
