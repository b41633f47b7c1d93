package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VolunteerPending  = "pending"
	VolunteerApproved = "approved"
	VolunteerRejected = "rejected"
)

type VolunteerModel struct {
	VolunteerID           uuid.UUID `gorm:"column:volunteer_id;type:uuid;primaryKey" json:"volunteer_id"`
	VolunteerFullName     string    `gorm:"column:volunteer_full_name;type:varchar(150);not null" json:"volunteer_full_name"`
	VolunteerEmail        string    `gorm:"column:volunteer_email;type:varchar(255);not null;index" json:"volunteer_email"`
	VolunteerPhone        string    `gorm:"column:volunteer_phone;type:varchar(30)" json:"volunteer_phone"`
	VolunteerInterests    string    `gorm:"column:volunteer_interests;type:text" json:"volunteer_interests"`
	VolunteerAvailability string    `gorm:"column:volunteer_availability;type:varchar(200)" json:"volunteer_availability"`
	VolunteerMessage      string    `gorm:"column:volunteer_message;type:text" json:"volunteer_message"`
	VolunteerStatus       string    `gorm:"column:volunteer_status;type:varchar(20);not null;index" json:"volunteer_status"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (VolunteerModel) TableName() string {
	return "volunteers"
}

func (m *VolunteerModel) BeforeCreate(tx *gorm.DB) error {
	if m.VolunteerID == uuid.Nil {
		m.VolunteerID = uuid.New()
	}
	if m.VolunteerStatus == "" {
		m.VolunteerStatus = VolunteerPending
	}
	return nil
}
