package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ourhour/weddinghub/internal/model"
)

type pgPaymentRepository struct {
	db *gorm.DB
}

func NewPGPaymentRepository(db *gorm.DB) PaymentRepository {
	return &pgPaymentRepository{db: db}
}

func (r *pgPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(payment).Error
}

func (r *pgPaymentRepository) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*model.Payment, error) {
	var payment model.Payment
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *pgPaymentRepository) ListByUser(
	ctx context.Context, userID uuid.UUID, page Pagination,
) ([]model.Payment, int64, error) {
	q := conn(ctx, r.db).Model(&model.Payment{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []model.Payment
	err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit()).Find(&payments).Error
	return payments, total, err
}

func (r *pgPaymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(payment).Error
}

func (r *pgPaymentRepository) MarkInvitationPaid(ctx context.Context, invitationID uuid.UUID, plan model.PlanType) error {
	return conn(ctx, r.db).
		Model(&model.Invitation{}).
		Where("id = ?", invitationID).
		Updates(map[string]interface{}{"is_paid": true, "plan_type": plan}).
		Error
}
