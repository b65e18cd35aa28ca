package repository

import (
	"context"

	"github.com/google/uuid"

	"ourhour/weddinghub/internal/model"
)

// AttendanceTally is one GROUP BY attendance_status row.
type AttendanceTally struct {
	AttendanceStatus model.AttendanceStatus
	Count            int
	Guests           int
}

type RSVPRepository interface {
	// Reconcile inserts rsvp, or overwrites the row sharing its natural
	// identity (invitation_id, guest_name, phone). On return rsvp holds the
	// stored row; created reports whether it was inserted.
	Reconcile(ctx context.Context, rsvp *model.RSVP) (created bool, err error)
	ListByInvitation(ctx context.Context, invitationID uuid.UUID, page Pagination) ([]model.RSVP, int64, error)
	TallyByStatus(ctx context.Context, invitationID uuid.UUID) ([]AttendanceTally, error)
}
