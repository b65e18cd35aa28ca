package model

import (
	"time"

	"github.com/google/uuid"
)

type Guestbook struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvitationID uuid.UUID `gorm:"type:uuid;not null;index:idx_guestbooks_invitation_public,priority:1" json:"-"`
	AuthorName   string    `gorm:"type:varchar(100);not null" json:"author_name"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	IsPublic     bool      `gorm:"not null;index:idx_guestbooks_invitation_public,priority:2" json:"is_public"`
	Phone        string    `gorm:"type:varchar(20);not null;default:''" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Invitation Invitation `gorm:"foreignKey:InvitationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Guestbook) TableName() string { return "guestbooks" }
