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

// RSVPInput lists every field a guest submission may write.
type RSVPInput struct {
	GuestName           string
	Phone               string
	GuestCount          *int
	AttendanceStatus    model.AttendanceStatus
	Message             string
	DietaryRestrictions string
}

type RSVPService interface {
	// Submit reconciles a guest response against a published invitation.
	// created reports whether a new row was inserted.
	Submit(ctx context.Context, invitationID uuid.UUID, input RSVPInput) (rsvp *model.RSVP, created bool, err error)
	Reconcile(ctx context.Context, inv *model.Invitation, input RSVPInput) (*model.RSVP, bool, error)
	List(ctx context.Context, userID, invitationID uuid.UUID, page repository.Pagination) ([]model.RSVP, int64, error)
	StatisticsBySlug(ctx context.Context, slug string) (*model.RSVPStatistics, error)
	Statistics(ctx context.Context, invitationID uuid.UUID) (*model.RSVPStatistics, error)
}

type rsvpService struct {
	invitationRepo repository.InvitationRepository
	rsvpRepo       repository.RSVPRepository
}

func NewRSVPService(invitationRepo repository.InvitationRepository, rsvpRepo repository.RSVPRepository) RSVPService {
	return &rsvpService{
		invitationRepo: invitationRepo,
		rsvpRepo:       rsvpRepo,
	}
}

func (s *rsvpService) Submit(ctx context.Context, invitationID uuid.UUID, input RSVPInput) (*model.RSVP, bool, error) {
	inv, err := s.invitationRepo.GetPublished(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrInvitationNotFound
		}
		return nil, false, fmt.Errorf("failed to find invitation: %w", err)
	}
	return s.Reconcile(ctx, inv, input)
}

func (s *rsvpService) Reconcile(ctx context.Context, inv *model.Invitation, input RSVPInput) (*model.RSVP, bool, error) {
	if !inv.EnableRSVP {
		return nil, false, ErrRSVPDisabled
	}

	rsvp := &model.RSVP{
		InvitationID:        inv.ID,
		GuestName:           strings.TrimSpace(input.GuestName),
		Phone:               strings.TrimSpace(input.Phone),
		GuestCount:          1,
		AttendanceStatus:    model.AttendancePending,
		Message:             input.Message,
		DietaryRestrictions: input.DietaryRestrictions,
	}
	if input.GuestCount != nil {
		rsvp.GuestCount = *input.GuestCount
	}
	if input.AttendanceStatus != "" {
		if !input.AttendanceStatus.Valid() {
			return nil, false, ErrInvalidAttendance
		}
		rsvp.AttendanceStatus = input.AttendanceStatus
	}

	created, err := s.rsvpRepo.Reconcile(ctx, rsvp)
	if err != nil {
		return nil, false, fmt.Errorf("failed to save rsvp: %w", err)
	}
	metrics.RecordRSVP(created)
	return rsvp, created, nil
}

func (s *rsvpService) List(
	ctx context.Context, userID, invitationID uuid.UUID, page repository.Pagination,
) ([]model.RSVP, int64, error) {
	if _, err := s.invitationRepo.GetOwned(ctx, invitationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrInvitationNotFound
		}
		return nil, 0, fmt.Errorf("failed to find invitation: %w", err)
	}
	rsvps, total, err := s.rsvpRepo.ListByInvitation(ctx, invitationID, page.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rsvps: %w", err)
	}
	return rsvps, total, nil
}

func (s *rsvpService) StatisticsBySlug(ctx context.Context, slug string) (*model.RSVPStatistics, error) {
	inv, err := s.invitationRepo.GetPublicBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return s.Statistics(ctx, inv.ID)
}

// Statistics aggregates responses per status. Only attending rows contribute
// to total_guests.
func (s *rsvpService) Statistics(ctx context.Context, invitationID uuid.UUID) (*model.RSVPStatistics, error) {
	tallies, err := s.rsvpRepo.TallyByStatus(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to tally rsvps: %w", err)
	}

	stats := &model.RSVPStatistics{}
	for _, t := range tallies {
		stats.TotalCount += t.Count
		switch t.AttendanceStatus {
		case model.AttendanceAttending:
			stats.AttendingCount += t.Count
			stats.TotalGuests += t.Guests
		case model.AttendanceNotAttending:
			stats.NotAttendingCount += t.Count
		case model.AttendancePending:
			stats.PendingCount += t.Count
		}
	}
	return stats, nil
}

var _ RSVPService = (*rsvpService)(nil)
