package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendanceAttending    AttendanceStatus = "ATTENDING"
	AttendanceNotAttending AttendanceStatus = "NOT_ATTENDING"
	AttendancePending      AttendanceStatus = "PENDING"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceAttending, AttendanceNotAttending, AttendancePending:
		return true
	}
	return false
}

// RSVP is unique per (invitation_id, guest_name, phone); see AutoMigrate.
type RSVP struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvitationID        uuid.UUID        `gorm:"type:uuid;not null;index:idx_rsvps_invitation_attendance,priority:1" json:"-"`
	GuestName           string           `gorm:"type:varchar(100);not null" json:"guest_name"`
	GuestCount          int              `gorm:"not null" json:"guest_count"`
	AttendanceStatus    AttendanceStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_rsvps_invitation_attendance,priority:2" json:"attendance_status"`
	Phone               string           `gorm:"type:varchar(20);not null;default:''" json:"phone"`
	Message             string           `gorm:"type:text;not null;default:''" json:"message"`
	DietaryRestrictions string           `gorm:"type:text;not null;default:''" json:"dietary_restrictions"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`

	Invitation Invitation `gorm:"foreignKey:InvitationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RSVP) TableName() string { return "rsvps" }

// RSVPStatistics aggregates the responses of a single invitation.
type RSVPStatistics struct {
	TotalCount        int `json:"total_count"`
	AttendingCount    int `json:"attending_count"`
	NotAttendingCount int `json:"not_attending_count"`
	PendingCount      int `json:"pending_count"`
	TotalGuests       int `json:"total_guests"`
}
