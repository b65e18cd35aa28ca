package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ourhour/weddinghub/internal/model"
)

type pgInvitationRepository struct {
	db *gorm.DB
}

func NewPGInvitationRepository(db *gorm.DB) InvitationRepository {
	return &pgInvitationRepository{db: db}
}

func (r *pgInvitationRepository) Create(ctx context.Context, inv *model.Invitation) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(inv).Error
}

func (r *pgInvitationRepository) first(ctx context.Context, query string, args ...interface{}) (*model.Invitation, error) {
	var inv model.Invitation
	if err := conn(ctx, r.db).Preload("Template").Where(query, args...).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *pgInvitationRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.Invitation, error) {
	return r.first(ctx, "id = ? AND user_id = ?", id, userID)
}

func (r *pgInvitationRepository) GetPublished(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	return r.first(ctx, "id = ? AND status = ?", id, model.InvitationStatusPublished)
}

func (r *pgInvitationRepository) GetPublicBySlug(ctx context.Context, slug string) (*model.Invitation, error) {
	return r.first(ctx, "url_slug = ? AND is_public = ? AND status = ?", slug, true, model.InvitationStatusPublished)
}

func (r *pgInvitationRepository) ListByUser(
	ctx context.Context, userID uuid.UUID, page Pagination,
) ([]model.Invitation, int64, error) {
	q := conn(ctx, r.db).Model(&model.Invitation{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invitations []model.Invitation
	err := q.Preload("Template").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&invitations).Error
	return invitations, total, err
}

func (r *pgInvitationRepository) Update(ctx context.Context, inv *model.Invitation) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(inv).Error
}

// DeleteOwned hard-deletes the invitation; RSVPs, guestbooks and payments
// cascade at the foreign key.
func (r *pgInvitationRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Invitation{})
	return res.RowsAffected > 0, res.Error
}

func (r *pgInvitationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&model.Invitation{}).Where("url_slug = ?", slug).Count(&n).Error
	return n > 0, err
}

func (r *pgInvitationRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).
		Model(&model.Invitation{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).
		Error
}
