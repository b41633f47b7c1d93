package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is both donor accounts and staff; Role tells them apart.
type UserModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FullName         string     `gorm:"size:100;not null" json:"full_name"`
	Email            string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash     string     `gorm:"not null" json:"-"`
	Role             string     `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsActive         bool       `gorm:"not null;default:true" json:"is_active"`
	EmailVerified    bool       `gorm:"not null;default:false" json:"email_verified"`
	EmailVerifyToken *string    `gorm:"size:64;index" json:"-"`
	GoogleID         *string    `gorm:"size:255;uniqueIndex" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = "user"
	}
	return nil
}
