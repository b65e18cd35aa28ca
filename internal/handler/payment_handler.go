package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/service"
	"ourhour/weddinghub/pkg/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, logger: logger}
}

type CreatePaymentRequest struct {
	InvitationID  uuid.UUID `json:"invitation_id" binding:"required"`
	PlanType      string    `json:"plan_type" binding:"required,oneof=FREE PREMIUM PREMIUM_PLUS"`
	PaymentMethod string    `json:"payment_method" binding:"max=50"`
}

func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), userID, service.CreatePaymentInput{
		InvitationID:  req.InvitationID,
		PlanType:      model.PlanType(req.PlanType),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlan):
			fieldError(c, "plan_type", err)
		case errors.Is(err, service.ErrInvitationNotFound):
			fieldError(c, "invitation_id", err)
		default:
			internalError(c, h.logger, "create payment failed", err)
		}
		return
	}
	response.Created(c, payment)
}

func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	page := pageFromQuery(c)

	payments, total, err := h.paymentService.List(c.Request.Context(), userID, page)
	if err != nil {
		internalError(c, h.logger, "list payments failed", err)
		return
	}
	response.Success(c, pageOf(page, total, payments))
}
