package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ourhour/weddinghub/internal/service"
	"ourhour/weddinghub/pkg/response"
)

type GuestbookHandler struct {
	guestbookService service.GuestbookService
	logger           *zap.Logger
}

func NewGuestbookHandler(guestbookService service.GuestbookService, logger *zap.Logger) *GuestbookHandler {
	return &GuestbookHandler{guestbookService: guestbookService, logger: logger}
}

type CreateGuestbookRequest struct {
	AuthorName string `json:"author_name" binding:"required,max=100"`
	Message    string `json:"message" binding:"required"`
	IsPublic   *bool  `json:"is_public"`
	Phone      string `json:"phone" binding:"max=20"`
}

func (h *GuestbookHandler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrInvitationNotFound):
		response.NotFound(c, "invitation not found")
	case errors.Is(err, service.ErrGuestbookNotFound):
		response.NotFound(c, "guestbook entry not found")
	case errors.Is(err, service.ErrFeatureDisabled):
		response.BadRequest(c, err.Error())
	default:
		internalError(c, h.logger, msg, err)
	}
}

func (h *GuestbookHandler) Create(c *gin.Context) {
	id, ok := uuidParam(c, "id", "invitation not found")
	if !ok {
		return
	}
	var req CreateGuestbookRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.guestbookService.Create(c.Request.Context(), id, service.GuestbookInput{
		AuthorName: req.AuthorName,
		Message:    req.Message,
		Phone:      req.Phone,
		IsPublic:   req.IsPublic,
	})
	if err != nil {
		h.writeError(c, "create guestbook entry failed", err)
		return
	}
	response.Created(c, entry)
}

func (h *GuestbookHandler) List(c *gin.Context) {
	id, ok := uuidParam(c, "id", "invitation not found")
	if !ok {
		return
	}
	page := pageFromQuery(c)

	entries, total, err := h.guestbookService.ListByInvitation(c.Request.Context(), id, page)
	if err != nil {
		h.writeError(c, "list guestbook failed", err)
		return
	}
	response.Success(c, pageOf(page, total, entries))
}

func (h *GuestbookHandler) ListBySlug(c *gin.Context) {
	page := pageFromQuery(c)

	entries, total, err := h.guestbookService.ListBySlug(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		h.writeError(c, "list guestbook failed", err)
		return
	}
	response.Success(c, pageOf(page, total, entries))
}

func (h *GuestbookHandler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "invitation not found")
	if !ok {
		return
	}
	entryID, ok := uuidParam(c, "gid", "guestbook entry not found")
	if !ok {
		return
	}

	if err := h.guestbookService.Delete(c.Request.Context(), userID, id, entryID); err != nil {
		h.writeError(c, "delete guestbook entry failed", err)
		return
	}
	response.NoContent(c)
}
