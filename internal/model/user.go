package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

type AuthProvider string

const (
	AuthProviderLocal AuthProvider = "LOCAL"
	AuthProviderKakao AuthProvider = "KAKAO"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string         `gorm:"type:varchar(254);not null" json:"email"`
	Name         string         `gorm:"type:varchar(50);not null" json:"name"`
	Phone        string         `gorm:"type:varchar(20);not null;default:''" json:"phone"`
	PasswordHash string         `gorm:"type:varchar(255);not null;default:''" json:"-"`
	Provider     AuthProvider   `gorm:"type:varchar(20);not null;default:'LOCAL'" json:"provider"`
	ProviderID   string         `gorm:"type:varchar(100);not null;default:''" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	LastLogin    *time.Time     `json:"last_login"`
	CreatedAt    time.Time      `json:"date_joined"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == UserRoleAdmin }
