package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ourhour/weddinghub/internal/model"
)

type pgRSVPRepository struct {
	db *gorm.DB
}

func NewPGRSVPRepository(db *gorm.DB) RSVPRepository {
	return &pgRSVPRepository{db: db}
}

func (r *pgRSVPRepository) Reconcile(ctx context.Context, rsvp *model.RSVP) (bool, error) {
	created := false
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		existing, err := lockRSVP(tx, rsvp)
		if err == nil {
			return overwriteRSVP(tx, existing, rsvp)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		res := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(rsvp)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			created = true
			return nil
		}

		// A concurrent submission with the same identity inserted first.
		existing, err = lockRSVP(tx, rsvp)
		if err != nil {
			return err
		}
		return overwriteRSVP(tx, existing, rsvp)
	})
	return created, err
}

func lockRSVP(tx *gorm.DB, key *model.RSVP) (*model.RSVP, error) {
	var existing model.RSVP
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("invitation_id = ? AND guest_name = ? AND phone = ?", key.InvitationID, key.GuestName, key.Phone).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// overwriteRSVP copies the updatable fields of src onto dst, persists dst and
// mirrors the stored row back into src.
func overwriteRSVP(tx *gorm.DB, dst, src *model.RSVP) error {
	dst.GuestCount = src.GuestCount
	dst.AttendanceStatus = src.AttendanceStatus
	dst.Message = src.Message
	dst.DietaryRestrictions = src.DietaryRestrictions

	err := tx.Model(dst).Select(
		"guest_count", "attendance_status", "message", "dietary_restrictions", "updated_at",
	).Updates(dst).Error
	if err != nil {
		return err
	}
	*src = *dst
	return nil
}

func (r *pgRSVPRepository) ListByInvitation(
	ctx context.Context, invitationID uuid.UUID, page Pagination,
) ([]model.RSVP, int64, error) {
	q := conn(ctx, r.db).Model(&model.RSVP{}).Where("invitation_id = ?", invitationID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rsvps []model.RSVP
	err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit()).Find(&rsvps).Error
	return rsvps, total, err
}

func (r *pgRSVPRepository) TallyByStatus(ctx context.Context, invitationID uuid.UUID) ([]AttendanceTally, error) {
	var rows []AttendanceTally
	err := conn(ctx, r.db).
		Model(&model.RSVP{}).
		Select("attendance_status, COUNT(*) AS count, COALESCE(SUM(guest_count), 0) AS guests").
		Where("invitation_id = ?", invitationID).
		Group("attendance_status").
		Scan(&rows).Error
	return rows, err
}
