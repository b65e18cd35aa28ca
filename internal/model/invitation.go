package model

import (
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationStatusDraft     InvitationStatus = "DRAFT"
	InvitationStatusPublished InvitationStatus = "PUBLISHED"
	InvitationStatusArchived  InvitationStatus = "ARCHIVED"
)

type PlanType string

const (
	PlanTypeFree        PlanType = "FREE"
	PlanTypePremium     PlanType = "PREMIUM"
	PlanTypePremiumPlus PlanType = "PREMIUM_PLUS"
)

func (p PlanType) Valid() bool {
	switch p {
	case PlanTypeFree, PlanTypePremium, PlanTypePremiumPlus:
		return true
	}
	return false
}

type Invitation struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID        `gorm:"type:uuid;not null;index:idx_invitations_user_status,priority:1" json:"user_id"`
	TemplateID *uuid.UUID       `gorm:"type:uuid" json:"template_id"`
	Title      string           `gorm:"type:varchar(200);not null" json:"title"`
	URLSlug    string           `gorm:"type:varchar(100);not null;default:''" json:"url_slug"`
	Status     InvitationStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index;index:idx_invitations_user_status,priority:2" json:"status"`

	GroomName       string `gorm:"type:varchar(50);not null" json:"groom_name"`
	GroomFatherName string `gorm:"type:varchar(50);not null;default:''" json:"groom_father_name"`
	GroomMotherName string `gorm:"type:varchar(50);not null;default:''" json:"groom_mother_name"`
	GroomPhone      string `gorm:"type:varchar(20);not null;default:''" json:"groom_phone"`

	BrideName       string `gorm:"type:varchar(50);not null" json:"bride_name"`
	BrideFatherName string `gorm:"type:varchar(50);not null;default:''" json:"bride_father_name"`
	BrideMotherName string `gorm:"type:varchar(50);not null;default:''" json:"bride_mother_name"`
	BridePhone      string `gorm:"type:varchar(20);not null;default:''" json:"bride_phone"`

	WeddingDate            time.Time `gorm:"not null" json:"wedding_date"`
	WeddingLocationName    string    `gorm:"type:varchar(200);not null;default:''" json:"wedding_location_name"`
	WeddingLocationAddress string    `gorm:"type:varchar(300);not null;default:''" json:"wedding_location_address"`
	WeddingLocationLat     *float64  `gorm:"type:numeric(10,8)" json:"wedding_location_lat"`
	WeddingLocationLng     *float64  `gorm:"type:numeric(11,8)" json:"wedding_location_lng"`

	InvitationMessage string `gorm:"type:text;not null;default:''" json:"invitation_message"`
	GreetingMessage   string `gorm:"type:text;not null;default:''" json:"greeting_message"`
	EndingMessage     string `gorm:"type:text;not null;default:''" json:"ending_message"`

	BackgroundAnimation string `gorm:"type:varchar(50);not null;default:''" json:"background_animation"`
	BackgroundColor     string `gorm:"type:varchar(20);not null;default:'#FFFFFF'" json:"background_color"`
	FontFamily          string `gorm:"type:varchar(50);not null;default:'default'" json:"font_family"`
	MusicURL            string `gorm:"type:varchar(500);not null;default:''" json:"music_url"`

	// No gorm defaults on these flags: gorm substitutes the default for an explicit false.
	EnableRSVP            bool `gorm:"column:enable_rsvp;not null" json:"enable_rsvp"`
	EnableGuestbook       bool `gorm:"not null" json:"enable_guestbook"`
	EnableAccountTransfer bool `gorm:"not null;default:false" json:"enable_account_transfer"`

	IsPublic    bool       `gorm:"not null" json:"is_public"`
	ViewCount   int        `gorm:"not null;default:0" json:"view_count"`
	IsPaid      bool       `gorm:"not null;default:false" json:"is_paid"`
	PlanType    PlanType   `gorm:"type:varchar(20);not null;default:'FREE'" json:"plan_type"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Template *Template `gorm:"foreignKey:TemplateID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Invitation) TableName() string { return "invitations" }

// IsPubliclyVisible reports whether anonymous guests may see the invitation.
func (i *Invitation) IsPubliclyVisible() bool {
	return i.IsPublic && i.Status == InvitationStatusPublished
}
