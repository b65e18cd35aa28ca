package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// CanTransition reports whether a payment may move from s to next.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusCompleted || next == PaymentStatusFailed
	case PaymentStatusCompleted:
		return next == PaymentStatusRefunded
	}
	return false
}

// Payment records a plan purchase. Amount is in KRW.
type Payment struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	InvitationID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"invitation_id"`
	OrderID       string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"order_id"`
	PaymentKey    string        `gorm:"type:varchar(200);not null;default:''" json:"payment_key"`
	Amount        int64         `gorm:"not null" json:"amount"`
	PlanType      PlanType      `gorm:"type:varchar(20);not null" json:"plan_type"`
	PaymentMethod string        `gorm:"type:varchar(50);not null;default:''" json:"payment_method"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	PaidAt        *time.Time    `json:"paid_at"`
	RefundedAt    *time.Time    `json:"refunded_at"`
	RefundReason  string        `gorm:"type:text;not null;default:''" json:"refund_reason"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Invitation Invitation `gorm:"foreignKey:InvitationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Payment) TableName() string { return "payments" }
