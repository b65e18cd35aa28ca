package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourhour/weddinghub/internal/metrics"
	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
)

type GuestbookInput struct {
	AuthorName string
	Message    string
	Phone      string
	IsPublic   *bool
}

type GuestbookService interface {
	Create(ctx context.Context, invitationID uuid.UUID, input GuestbookInput) (*model.Guestbook, error)
	Write(ctx context.Context, inv *model.Invitation, input GuestbookInput) (*model.Guestbook, error)
	ListByInvitation(ctx context.Context, invitationID uuid.UUID, page repository.Pagination) ([]model.Guestbook, int64, error)
	ListBySlug(ctx context.Context, slug string, page repository.Pagination) ([]model.Guestbook, int64, error)
	Delete(ctx context.Context, userID, invitationID, entryID uuid.UUID) error
}

type guestbookService struct {
	invitationRepo repository.InvitationRepository
	guestbookRepo  repository.GuestbookRepository
}

func NewGuestbookService(
	invitationRepo repository.InvitationRepository,
	guestbookRepo repository.GuestbookRepository,
) GuestbookService {
	return &guestbookService{
		invitationRepo: invitationRepo,
		guestbookRepo:  guestbookRepo,
	}
}

func (s *guestbookService) published(ctx context.Context, invitationID uuid.UUID) (*model.Invitation, error) {
	inv, err := s.invitationRepo.GetPublished(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return inv, nil
}

func (s *guestbookService) Create(ctx context.Context, invitationID uuid.UUID, input GuestbookInput) (*model.Guestbook, error) {
	inv, err := s.published(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	return s.Write(ctx, inv, input)
}

// Write always inserts; visibility is applied when listing.
func (s *guestbookService) Write(ctx context.Context, inv *model.Invitation, input GuestbookInput) (*model.Guestbook, error) {
	if !inv.EnableGuestbook {
		return nil, ErrGuestbookDisabled
	}
	entry := &model.Guestbook{
		InvitationID: inv.ID,
		AuthorName:   strings.TrimSpace(input.AuthorName),
		Message:      input.Message,
		Phone:        strings.TrimSpace(input.Phone),
		IsPublic:     true,
	}
	if input.IsPublic != nil {
		entry.IsPublic = *input.IsPublic
	}
	if err := s.guestbookRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create guestbook entry: %w", err)
	}
	metrics.RecordGuestbookEntry()
	return entry, nil
}

func (s *guestbookService) ListByInvitation(
	ctx context.Context, invitationID uuid.UUID, page repository.Pagination,
) ([]model.Guestbook, int64, error) {
	inv, err := s.published(ctx, invitationID)
	if err != nil {
		return nil, 0, err
	}
	return s.listPublic(ctx, inv.ID, page)
}

func (s *guestbookService) ListBySlug(
	ctx context.Context, slug string, page repository.Pagination,
) ([]model.Guestbook, int64, error) {
	inv, err := s.invitationRepo.GetPublicBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrInvitationNotFound
		}
		return nil, 0, fmt.Errorf("failed to find invitation: %w", err)
	}
	return s.listPublic(ctx, inv.ID, page)
}

func (s *guestbookService) listPublic(
	ctx context.Context, invitationID uuid.UUID, page repository.Pagination,
) ([]model.Guestbook, int64, error) {
	entries, total, err := s.guestbookRepo.ListPublic(ctx, invitationID, page.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list guestbook: %w", err)
	}
	return entries, total, nil
}

func (s *guestbookService) Delete(ctx context.Context, userID, invitationID, entryID uuid.UUID) error {
	if _, err := s.invitationRepo.GetOwned(ctx, invitationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("failed to find invitation: %w", err)
	}
	deleted, err := s.guestbookRepo.Delete(ctx, entryID, invitationID)
	if err != nil {
		return fmt.Errorf("failed to delete guestbook entry: %w", err)
	}
	if !deleted {
		return ErrGuestbookNotFound
	}
	return nil
}

var _ GuestbookService = (*guestbookService)(nil)
