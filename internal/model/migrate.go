package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Template{},
		&Invitation{},
		&RSVP{},
		&Guestbook{},
		&Payment{},
	); err != nil {
		return err
	}

	indexes := []string{
		// Case-insensitive unique email for non-soft-deleted users.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower " +
			"ON users ((lower(email))) WHERE deleted_at IS NULL",
		// Slugs are unique once assigned.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_invitations_url_slug " +
			"ON invitations (url_slug) WHERE url_slug <> ''",
		// Natural identity of an RSVP; the reconciliation insert relies on it.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_rsvps_natural_identity " +
			"ON rsvps (invitation_id, guest_name, phone)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
