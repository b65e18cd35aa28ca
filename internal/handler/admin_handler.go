package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/service"
	"ourhour/weddinghub/pkg/response"
)

// AdminHandler serves the staff-only catalog and payment endpoints.
type AdminHandler struct {
	templateService service.TemplateService
	paymentService  service.PaymentService
	logger          *zap.Logger
}

func NewAdminHandler(
	templateService service.TemplateService,
	paymentService service.PaymentService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		templateService: templateService,
		paymentService:  paymentService,
		logger:          logger,
	}
}

type CreateTemplateRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url" binding:"required,url,max=500"`
	PreviewURL   string `json:"preview_url" binding:"omitempty,url,max=500"`
	Category     string `json:"category" binding:"required"`
	IsPremium    bool   `json:"is_premium"`
	IsActive     *bool  `json:"is_active"`
}

type UpdateTemplateRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	Description  *string `json:"description"`
	ThumbnailURL *string `json:"thumbnail_url" binding:"omitempty,url,max=500"`
	PreviewURL   *string `json:"preview_url" binding:"omitempty,max=500"`
	Category     *string `json:"category"`
	IsPremium    *bool   `json:"is_premium"`
	IsActive     *bool   `json:"is_active"`
}

type UpdatePaymentStatusRequest struct {
	Status       string `json:"status" binding:"required,oneof=COMPLETED FAILED REFUNDED"`
	PaymentKey   string `json:"payment_key" binding:"max=200"`
	RefundReason string `json:"refund_reason"`
}

func (h *AdminHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	tpl, err := h.templateService.Create(c.Request.Context(), service.CreateTemplateInput{
		Name:         req.Name,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		PreviewURL:   req.PreviewURL,
		Category:     model.TemplateCategory(req.Category),
		IsPremium:    req.IsPremium,
		IsActive:     req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			fieldError(c, "category", err)
			return
		}
		internalError(c, h.logger, "create template failed", err)
		return
	}

	response.Created(c, tpl)
}

func (h *AdminHandler) UpdateTemplate(c *gin.Context) {
	id, ok := uuidParam(c, "id", "template not found")
	if !ok {
		return
	}
	var req UpdateTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	input := service.UpdateTemplateInput{
		Name:         req.Name,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		PreviewURL:   req.PreviewURL,
		IsPremium:    req.IsPremium,
		IsActive:     req.IsActive,
	}
	if req.Category != nil {
		category := model.TemplateCategory(*req.Category)
		input.Category = &category
	}

	tpl, err := h.templateService.Update(c.Request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			response.NotFound(c, "template not found")
		case errors.Is(err, service.ErrInvalidCategory):
			fieldError(c, "category", err)
		default:
			internalError(c, h.logger, "update template failed", err)
		}
		return
	}

	response.Success(c, tpl)
}

// UpdatePaymentStatus records the outcome of a payment.
func (h *AdminHandler) UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.UpdateStatus(c.Request.Context(), c.Param("order_id"), service.PaymentStatusUpdate{
		Status:       model.PaymentStatus(req.Status),
		PaymentKey:   req.PaymentKey,
		RefundReason: req.RefundReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			response.NotFound(c, "payment not found")
		case errors.Is(err, service.ErrInvalidPaymentTransition):
			response.Conflict(c, err.Error())
		default:
			internalError(c, h.logger, "update payment failed", err)
		}
		return
	}

	h.logger.Info("payment status changed",
		zap.String("order_id", payment.OrderID),
		zap.String("status", string(payment.Status)),
	)
	response.Success(c, payment)
}
