package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactSubmissionModel struct {
	ContactID           uuid.UUID  `gorm:"column:contact_id;type:uuid;primaryKey" json:"contact_id"`
	ContactName         string     `gorm:"column:contact_name;type:varchar(150);not null" json:"contact_name"`
	ContactEmail        string     `gorm:"column:contact_email;type:varchar(255);not null;index" json:"contact_email"`
	ContactSubject      string     `gorm:"column:contact_subject;type:varchar(200)" json:"contact_subject"`
	ContactMessage      string     `gorm:"column:contact_message;type:text;not null" json:"contact_message"`
	ContactIsResolved   bool       `gorm:"column:contact_is_resolved;not null;index" json:"contact_is_resolved"`
	ContactResolvedAt   *time.Time `gorm:"column:contact_resolved_at" json:"contact_resolved_at,omitempty"`
	ContactReplyMessage string     `gorm:"column:contact_reply_message;type:text" json:"contact_reply_message"`
	ContactRepliedAt    *time.Time `gorm:"column:contact_replied_at" json:"contact_replied_at,omitempty"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContactSubmissionModel) TableName() string {
	return "contact_submissions"
}

func (m *ContactSubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ContactID == uuid.Nil {
		m.ContactID = uuid.New()
	}
	return nil
}
