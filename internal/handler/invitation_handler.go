package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/service"
	"ourhour/weddinghub/pkg/response"
)

type InvitationHandler struct {
	invitationService service.InvitationService
	logger            *zap.Logger
}

func NewInvitationHandler(invitationService service.InvitationService, logger *zap.Logger) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService, logger: logger}
}

// InvitationBody holds the optional owner-writable fields shared by create
// and update.
type InvitationBody struct {
	TemplateID *uuid.UUID `json:"template_id"`

	GroomFatherName *string `json:"groom_father_name" binding:"omitempty,max=50"`
	GroomMotherName *string `json:"groom_mother_name" binding:"omitempty,max=50"`
	GroomPhone      *string `json:"groom_phone" binding:"omitempty,kphone"`
	BrideFatherName *string `json:"bride_father_name" binding:"omitempty,max=50"`
	BrideMotherName *string `json:"bride_mother_name" binding:"omitempty,max=50"`
	BridePhone      *string `json:"bride_phone" binding:"omitempty,kphone"`

	WeddingLocationName    *string  `json:"wedding_location_name" binding:"omitempty,max=200"`
	WeddingLocationAddress *string  `json:"wedding_location_address" binding:"omitempty,max=300"`
	WeddingLocationLat     *float64 `json:"wedding_location_lat" binding:"omitempty,gte=-90,lte=90"`
	WeddingLocationLng     *float64 `json:"wedding_location_lng" binding:"omitempty,gte=-180,lte=180"`

	InvitationMessage *string `json:"invitation_message"`
	GreetingMessage   *string `json:"greeting_message"`
	EndingMessage     *string `json:"ending_message"`

	BackgroundAnimation *string `json:"background_animation" binding:"omitempty,max=50"`
	BackgroundColor     *string `json:"background_color" binding:"omitempty,max=20"`
	FontFamily          *string `json:"font_family" binding:"omitempty,max=50"`
	MusicURL            *string `json:"music_url" binding:"omitempty,url,max=500"`

	EnableRSVP            *bool   `json:"enable_rsvp"`
	EnableGuestbook       *bool   `json:"enable_guestbook"`
	EnableAccountTransfer *bool   `json:"enable_account_transfer"`
	IsPublic              *bool   `json:"is_public"`
	PlanType              *string `json:"plan_type" binding:"omitempty,oneof=FREE PREMIUM PREMIUM_PLUS"`
}

type CreateInvitationRequest struct {
	Title       *string    `json:"title" binding:"required,min=1,max=200"`
	GroomName   *string    `json:"groom_name" binding:"required,min=1,max=50"`
	BrideName   *string    `json:"bride_name" binding:"required,min=1,max=50"`
	WeddingDate *time.Time `json:"wedding_date" binding:"required"`
	InvitationBody
}

// UpdateInvitationRequest is a partial update. Status, slug, counters and
// payment state are not writable here.
type UpdateInvitationRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	GroomName   *string    `json:"groom_name" binding:"omitempty,min=1,max=50"`
	BrideName   *string    `json:"bride_name" binding:"omitempty,min=1,max=50"`
	WeddingDate *time.Time `json:"wedding_date"`
	InvitationBody
}

func (b InvitationBody) fields() service.InvitationFields {
	f := service.InvitationFields{
		TemplateID:             b.TemplateID,
		GroomFatherName:        b.GroomFatherName,
		GroomMotherName:        b.GroomMotherName,
		GroomPhone:             b.GroomPhone,
		BrideFatherName:        b.BrideFatherName,
		BrideMotherName:        b.BrideMotherName,
		BridePhone:             b.BridePhone,
		WeddingLocationName:    b.WeddingLocationName,
		WeddingLocationAddress: b.WeddingLocationAddress,
		WeddingLocationLat:     b.WeddingLocationLat,
		WeddingLocationLng:     b.WeddingLocationLng,
		InvitationMessage:      b.InvitationMessage,
		GreetingMessage:        b.GreetingMessage,
		EndingMessage:          b.EndingMessage,
		BackgroundAnimation:    b.BackgroundAnimation,
		BackgroundColor:        b.BackgroundColor,
		FontFamily:             b.FontFamily,
		MusicURL:               b.MusicURL,
		EnableRSVP:             b.EnableRSVP,
		EnableGuestbook:        b.EnableGuestbook,
		EnableAccountTransfer:  b.EnableAccountTransfer,
		IsPublic:               b.IsPublic,
	}
	if b.PlanType != nil {
		plan := model.PlanType(*b.PlanType)
		f.PlanType = &plan
	}
	return f
}

// InvitationResponse is the owner view of an invitation.
type InvitationResponse struct {
	*model.Invitation
	Template *model.TemplateSummary `json:"template"`
}

func ownerView(inv *model.Invitation) InvitationResponse {
	return InvitationResponse{Invitation: inv, Template: inv.Template.Summary()}
}

// PublicInvitationResponse is what guests see. It carries no owner identity,
// phone numbers, or payment state.
type PublicInvitationResponse struct {
	ID                     uuid.UUID              `json:"id"`
	Template               *model.TemplateSummary `json:"template"`
	Title                  string                 `json:"title"`
	URLSlug                string                 `json:"url_slug"`
	GroomName              string                 `json:"groom_name"`
	GroomFatherName        string                 `json:"groom_father_name"`
	GroomMotherName        string                 `json:"groom_mother_name"`
	BrideName              string                 `json:"bride_name"`
	BrideFatherName        string                 `json:"bride_father_name"`
	BrideMotherName        string                 `json:"bride_mother_name"`
	WeddingDate            time.Time              `json:"wedding_date"`
	WeddingLocationName    string                 `json:"wedding_location_name"`
	WeddingLocationAddress string                 `json:"wedding_location_address"`
	WeddingLocationLat     *float64               `json:"wedding_location_lat"`
	WeddingLocationLng     *float64               `json:"wedding_location_lng"`
	InvitationMessage      string                 `json:"invitation_message"`
	GreetingMessage        string                 `json:"greeting_message"`
	EndingMessage          string                 `json:"ending_message"`
	BackgroundAnimation    string                 `json:"background_animation"`
	BackgroundColor        string                 `json:"background_color"`
	FontFamily             string                 `json:"font_family"`
	MusicURL               string                 `json:"music_url"`
	EnableRSVP             bool                   `json:"enable_rsvp"`
	EnableGuestbook        bool                   `json:"enable_guestbook"`
	EnableAccountTransfer  bool                   `json:"enable_account_transfer"`
	ViewCount              int                    `json:"view_count"`
	PublishedAt            *time.Time             `json:"published_at"`
}

func publicView(inv *model.Invitation) PublicInvitationResponse {
	return PublicInvitationResponse{
		ID:                     inv.ID,
		Template:               inv.Template.Summary(),
		Title:                  inv.Title,
		URLSlug:                inv.URLSlug,
		GroomName:              inv.GroomName,
		GroomFatherName:        inv.GroomFatherName,
		GroomMotherName:        inv.GroomMotherName,
		BrideName:              inv.BrideName,
		BrideFatherName:        inv.BrideFatherName,
		BrideMotherName:        inv.BrideMotherName,
		WeddingDate:            inv.WeddingDate,
		WeddingLocationName:    inv.WeddingLocationName,
		WeddingLocationAddress: inv.WeddingLocationAddress,
		WeddingLocationLat:     inv.WeddingLocationLat,
		WeddingLocationLng:     inv.WeddingLocationLng,
		InvitationMessage:      inv.InvitationMessage,
		GreetingMessage:        inv.GreetingMessage,
		EndingMessage:          inv.EndingMessage,
		BackgroundAnimation:    inv.BackgroundAnimation,
		BackgroundColor:        inv.BackgroundColor,
		FontFamily:             inv.FontFamily,
		MusicURL:               inv.MusicURL,
		EnableRSVP:             inv.EnableRSVP,
		EnableGuestbook:        inv.EnableGuestbook,
		EnableAccountTransfer:  inv.EnableAccountTransfer,
		ViewCount:              inv.ViewCount,
		PublishedAt:            inv.PublishedAt,
	}
}

func (h *InvitationHandler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrInvitationNotFound):
		response.NotFound(c, "invitation not found")
	case errors.Is(err, service.ErrTemplateUnavailable):
		fieldError(c, "template_id", err)
	default:
		internalError(c, h.logger, msg, err)
	}
}

func (h *InvitationHandler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	page := pageFromQuery(c)

	invitations, total, err := h.invitationService.List(c.Request.Context(), userID, page)
	if err != nil {
		h.writeError(c, "list invitations failed", err)
		return
	}

	items := make([]InvitationResponse, 0, len(invitations))
	for i := range invitations {
		items = append(items, ownerView(&invitations[i]))
	}
	response.Success(c, pageOf(page, total, items))
}

func (h *InvitationHandler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreateInvitationRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := req.fields()
	fields.Title = req.Title
	fields.GroomName = req.GroomName
	fields.BrideName = req.BrideName
	fields.WeddingDate = req.WeddingDate

	inv, err := h.invitationService.Create(c.Request.Context(), userID, fields)
	if err != nil {
		h.writeError(c, "create invitation failed", err)
		return
	}
	response.Created(c, ownerView(inv))
}

func (h *InvitationHandler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "invitation not found")
	if !ok {
		return
	}

	inv, err := h.invitationService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.writeError(c, "get invitation failed", err)
		return
	}
	response.Success(c, ownerView(inv))
}

func (h *InvitationHandler) Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "invitation not found")
	if !ok {
		return
	}
	var req UpdateInvitationRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := req.fields()
	fields.Title = req.Title
	fields.GroomName = req.GroomName
	fields.BrideName = req.BrideName
	fields.WeddingDate = req.WeddingDate

	inv, err := h.invitationService.Update(c.Request.Context(), userID, id, fields)
	if err != nil {
		h.writeError(c, "update invitation failed", err)
		return
	}
	response.Success(c, ownerView(inv))
}

func (h *InvitationHandler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "invitation not found")
	if !ok {
		return
	}

	if err := h.invitationService.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeError(c, "delete invitation failed", err)
		return
	}
	response.NoContent(c)
}

func (h *InvitationHandler) Publish(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "invitation not found")
	if !ok {
		return
	}

	inv, err := h.invitationService.Publish(c.Request.Context(), userID, id)
	if err != nil {
		h.writeError(c, "publish invitation failed", err)
		return
	}
	h.logger.Info("invitation published",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("slug", inv.URLSlug),
	)
	response.Success(c, ownerView(inv))
}

// GetBySlug is the anonymous guest view; each hit counts as a view.
func (h *InvitationHandler) GetBySlug(c *gin.Context) {
	inv, err := h.invitationService.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, "get public invitation failed", err)
		return
	}
	response.Success(c, publicView(inv))
}
