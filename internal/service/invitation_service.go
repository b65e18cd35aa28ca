package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ourhour/weddinghub/internal/metrics"
	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
)

const (
	slugLength      = 12
	slugMaxAttempts = 10
)

// InvitationFields carries the owner-writable invitation fields. A nil field
// is left unchanged on update and takes its default on create.
type InvitationFields struct {
	TemplateID *uuid.UUID
	Title      *string

	GroomName       *string
	GroomFatherName *string
	GroomMotherName *string
	GroomPhone      *string
	BrideName       *string
	BrideFatherName *string
	BrideMotherName *string
	BridePhone      *string

	WeddingDate            *time.Time
	WeddingLocationName    *string
	WeddingLocationAddress *string
	WeddingLocationLat     *float64
	WeddingLocationLng     *float64

	InvitationMessage *string
	GreetingMessage   *string
	EndingMessage     *string

	BackgroundAnimation *string
	BackgroundColor     *string
	FontFamily          *string
	MusicURL            *string

	EnableRSVP            *bool
	EnableGuestbook       *bool
	EnableAccountTransfer *bool
	IsPublic              *bool
	PlanType              *model.PlanType
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (f InvitationFields) apply(inv *model.Invitation) {
	setIf(&inv.Title, f.Title)
	setIf(&inv.GroomName, f.GroomName)
	setIf(&inv.GroomFatherName, f.GroomFatherName)
	setIf(&inv.GroomMotherName, f.GroomMotherName)
	setIf(&inv.GroomPhone, f.GroomPhone)
	setIf(&inv.BrideName, f.BrideName)
	setIf(&inv.BrideFatherName, f.BrideFatherName)
	setIf(&inv.BrideMotherName, f.BrideMotherName)
	setIf(&inv.BridePhone, f.BridePhone)
	setIf(&inv.WeddingDate, f.WeddingDate)
	setIf(&inv.WeddingLocationName, f.WeddingLocationName)
	setIf(&inv.WeddingLocationAddress, f.WeddingLocationAddress)
	if f.WeddingLocationLat != nil {
		inv.WeddingLocationLat = f.WeddingLocationLat
	}
	if f.WeddingLocationLng != nil {
		inv.WeddingLocationLng = f.WeddingLocationLng
	}
	setIf(&inv.InvitationMessage, f.InvitationMessage)
	setIf(&inv.GreetingMessage, f.GreetingMessage)
	setIf(&inv.EndingMessage, f.EndingMessage)
	setIf(&inv.BackgroundAnimation, f.BackgroundAnimation)
	setIf(&inv.BackgroundColor, f.BackgroundColor)
	setIf(&inv.FontFamily, f.FontFamily)
	setIf(&inv.MusicURL, f.MusicURL)
	setIf(&inv.EnableRSVP, f.EnableRSVP)
	setIf(&inv.EnableGuestbook, f.EnableGuestbook)
	setIf(&inv.EnableAccountTransfer, f.EnableAccountTransfer)
	setIf(&inv.IsPublic, f.IsPublic)
	setIf(&inv.PlanType, f.PlanType)
}

type InvitationService interface {
	Create(ctx context.Context, userID uuid.UUID, fields InvitationFields) (*model.Invitation, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Invitation, error)
	List(ctx context.Context, userID uuid.UUID, page repository.Pagination) ([]model.Invitation, int64, error)
	Update(ctx context.Context, userID, id uuid.UUID, fields InvitationFields) (*model.Invitation, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Publish(ctx context.Context, userID, id uuid.UUID) (*model.Invitation, error)
	GetPublicBySlug(ctx context.Context, slug string) (*model.Invitation, error)
	GenerateUniqueSlug(ctx context.Context) (string, error)
}

type InvitationOption func(*invitationService)

// WithClock replaces time.Now for publish timestamps and the slug fallback.
func WithClock(now func() time.Time) InvitationOption {
	return func(s *invitationService) { s.now = now }
}

// WithSlugSource replaces the random slug token generator.
func WithSlugSource(next func() string) InvitationOption {
	return func(s *invitationService) { s.nextSlug = next }
}

func WithLogger(logger *zap.Logger) InvitationOption {
	return func(s *invitationService) { s.logger = logger }
}

type invitationService struct {
	tx             repository.Transactor
	invitationRepo repository.InvitationRepository
	templateRepo   repository.TemplateRepository
	logger         *zap.Logger
	now            func() time.Time
	nextSlug       func() string
}

func NewInvitationService(
	tx repository.Transactor,
	invitationRepo repository.InvitationRepository,
	templateRepo repository.TemplateRepository,
	opts ...InvitationOption,
) InvitationService {
	s := &invitationService{
		tx:             tx,
		invitationRepo: invitationRepo,
		templateRepo:   templateRepo,
		logger:         zap.NewNop(),
		now:            time.Now,
		nextSlug:       randomSlug,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func randomSlug() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:slugLength]
}

func (s *invitationService) activeTemplate(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	tpl, err := s.templateRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateUnavailable
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return tpl, nil
}

func (s *invitationService) Create(ctx context.Context, userID uuid.UUID, fields InvitationFields) (*model.Invitation, error) {
	inv := &model.Invitation{
		UserID:          userID,
		Status:          model.InvitationStatusDraft,
		BackgroundColor: "#FFFFFF",
		FontFamily:      "default",
		EnableRSVP:      true,
		EnableGuestbook: true,
		IsPublic:        true,
		PlanType:        model.PlanTypeFree,
	}
	fields.apply(inv)

	var tpl *model.Template
	if fields.TemplateID != nil {
		var err error
		if tpl, err = s.activeTemplate(ctx, *fields.TemplateID); err != nil {
			return nil, err
		}
		inv.TemplateID = &tpl.ID
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		slug, err := s.GenerateUniqueSlug(ctx)
		if err != nil {
			return err
		}
		inv.URLSlug = slug
		if err := s.invitationRepo.Create(ctx, inv); err != nil {
			return fmt.Errorf("failed to create invitation: %w", err)
		}
		if tpl != nil {
			if err := s.templateRepo.IncrementUsageCount(ctx, tpl.ID); err != nil {
				return fmt.Errorf("failed to count template usage: %w", err)
			}
			tpl.UsageCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	inv.Template = tpl
	return inv, nil
}

func (s *invitationService) owned(ctx context.Context, userID, id uuid.UUID) (*model.Invitation, error) {
	inv, err := s.invitationRepo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return inv, nil
}

func (s *invitationService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Invitation, error) {
	return s.owned(ctx, userID, id)
}

func (s *invitationService) List(
	ctx context.Context, userID uuid.UUID, page repository.Pagination,
) ([]model.Invitation, int64, error) {
	invitations, total, err := s.invitationRepo.ListByUser(ctx, userID, page.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, total, nil
}

func (s *invitationService) Update(
	ctx context.Context, userID, id uuid.UUID, fields InvitationFields,
) (*model.Invitation, error) {
	inv, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if fields.TemplateID != nil && (inv.TemplateID == nil || *inv.TemplateID != *fields.TemplateID) {
		tpl, err := s.activeTemplate(ctx, *fields.TemplateID)
		if err != nil {
			return nil, err
		}
		inv.TemplateID = &tpl.ID
		inv.Template = tpl
	}
	fields.apply(inv)

	if err := s.invitationRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}
	return inv, nil
}

func (s *invitationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.invitationRepo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	if !deleted {
		return ErrInvitationNotFound
	}
	return nil
}

// Publish makes the invitation publicly addressable. Calling it again keeps
// the slug and refreshes published_at.
func (s *invitationService) Publish(ctx context.Context, userID, id uuid.UUID) (*model.Invitation, error) {
	var inv *model.Invitation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if inv, err = s.owned(ctx, userID, id); err != nil {
			return err
		}
		if inv.URLSlug == "" {
			if inv.URLSlug, err = s.GenerateUniqueSlug(ctx); err != nil {
				return err
			}
		}
		now := s.now().UTC()
		inv.Status = model.InvitationStatusPublished
		inv.PublishedAt = &now
		if err := s.invitationRepo.Update(ctx, inv); err != nil {
			return fmt.Errorf("failed to publish invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordPublish()
	return inv, nil
}

// GetPublicBySlug returns a public, published invitation and counts the view.
func (s *invitationService) GetPublicBySlug(ctx context.Context, slug string) (*model.Invitation, error) {
	inv, err := s.invitationRepo.GetPublicBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	if err := s.invitationRepo.IncrementViewCount(ctx, inv.ID); err != nil {
		return nil, fmt.Errorf("failed to count view: %w", err)
	}
	inv.ViewCount++
	metrics.RecordPublicView()
	return inv, nil
}

// GenerateUniqueSlug tries a bounded number of random tokens, then falls back
// to a timestamp slug.
func (s *invitationService) GenerateUniqueSlug(ctx context.Context) (string, error) {
	for i := 0; i < slugMaxAttempts; i++ {
		slug := s.nextSlug()
		exists, err := s.invitationRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
	}
	fallback := "inv-" + strconv.FormatInt(s.now().Unix(), 10)
	s.logger.Warn("slug attempts exhausted, using timestamp fallback",
		zap.Int("attempts", slugMaxAttempts), zap.String("slug", fallback))
	metrics.RecordSlugFallback()
	return fallback, nil
}

var _ InvitationService = (*invitationService)(nil)
