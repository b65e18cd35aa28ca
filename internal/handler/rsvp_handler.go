package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/service"
	"ourhour/weddinghub/pkg/response"
)

type RSVPHandler struct {
	rsvpService service.RSVPService
	logger      *zap.Logger
}

func NewRSVPHandler(rsvpService service.RSVPService, logger *zap.Logger) *RSVPHandler {
	return &RSVPHandler{rsvpService: rsvpService, logger: logger}
}

type SubmitRSVPRequest struct {
	GuestName           string `json:"guest_name" binding:"required,max=100"`
	GuestCount          *int   `json:"guest_count" binding:"omitempty,gte=0,lte=100"`
	AttendanceStatus    string `json:"attendance_status" binding:"omitempty,oneof=ATTENDING NOT_ATTENDING PENDING"`
	Phone               string `json:"phone" binding:"max=20"`
	Message             string `json:"message"`
	DietaryRestrictions string `json:"dietary_restrictions"`
}

func (h *RSVPHandler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrInvitationNotFound):
		response.NotFound(c, "invitation not found")
	case errors.Is(err, service.ErrFeatureDisabled):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidAttendance):
		fieldError(c, "attendance_status", err)
	default:
		internalError(c, h.logger, msg, err)
	}
}

// Submit answers 201 when a new response was recorded and 200 when an
// existing one was overwritten.
func (h *RSVPHandler) Submit(c *gin.Context) {
	id, ok := uuidParam(c, "id", "invitation not found")
	if !ok {
		return
	}
	var req SubmitRSVPRequest
	if !bindJSON(c, &req) {
		return
	}

	rsvp, created, err := h.rsvpService.Submit(c.Request.Context(), id, service.RSVPInput{
		GuestName:           req.GuestName,
		Phone:               req.Phone,
		GuestCount:          req.GuestCount,
		AttendanceStatus:    model.AttendanceStatus(req.AttendanceStatus),
		Message:             req.Message,
		DietaryRestrictions: req.DietaryRestrictions,
	})
	if err != nil {
		h.writeError(c, "submit rsvp failed", err)
		return
	}

	if created {
		response.Created(c, rsvp)
		return
	}
	response.Success(c, rsvp)
}

// List is the owner's guest list.
func (h *RSVPHandler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "invitation not found")
	if !ok {
		return
	}
	page := pageFromQuery(c)

	rsvps, total, err := h.rsvpService.List(c.Request.Context(), userID, id, page)
	if err != nil {
		h.writeError(c, "list rsvps failed", err)
		return
	}
	response.Success(c, pageOf(page, total, rsvps))
}

// StatisticsBySlug exposes aggregate counts only.
func (h *RSVPHandler) StatisticsBySlug(c *gin.Context) {
	stats, err := h.rsvpService.StatisticsBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, "rsvp statistics failed", err)
		return
	}
	response.Success(c, stats)
}
