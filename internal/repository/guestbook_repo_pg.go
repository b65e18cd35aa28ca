package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ourhour/weddinghub/internal/model"
)

type pgGuestbookRepository struct {
	db *gorm.DB
}

func NewPGGuestbookRepository(db *gorm.DB) GuestbookRepository {
	return &pgGuestbookRepository{db: db}
}

func (r *pgGuestbookRepository) Create(ctx context.Context, entry *model.Guestbook) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(entry).Error
}

func (r *pgGuestbookRepository) ListPublic(
	ctx context.Context, invitationID uuid.UUID, page Pagination,
) ([]model.Guestbook, int64, error) {
	q := conn(ctx, r.db).Model(&model.Guestbook{}).
		Where("invitation_id = ? AND is_public = ?", invitationID, true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.Guestbook
	err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit()).Find(&entries).Error
	return entries, total, err
}

func (r *pgGuestbookRepository) Delete(ctx context.Context, id, invitationID uuid.UUID) (bool, error) {
	res := conn(ctx, r.db).Where("id = ? AND invitation_id = ?", id, invitationID).Delete(&model.Guestbook{})
	return res.RowsAffected > 0, res.Error
}
