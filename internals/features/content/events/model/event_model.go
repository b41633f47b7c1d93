package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventModel struct {
	EventID          uuid.UUID  `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	EventTitle       string     `gorm:"column:event_title;type:varchar(200);not null" json:"event_title"`
	EventSlug        string     `gorm:"column:event_slug;type:varchar(220);not null;uniqueIndex" json:"event_slug"`
	EventDescription string     `gorm:"column:event_description;type:text" json:"event_description"`
	EventLocation    string     `gorm:"column:event_location;type:varchar(255)" json:"event_location"`
	EventStartAt     time.Time  `gorm:"column:event_start_at;not null;index" json:"event_start_at"`
	EventEndAt       *time.Time `gorm:"column:event_end_at" json:"event_end_at,omitempty"`
	EventImageURL    string     `gorm:"column:event_image_url;type:text" json:"event_image_url"`
	EventIsPublished bool       `gorm:"column:event_is_published;not null;index" json:"event_is_published"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventID == uuid.Nil {
		m.EventID = uuid.New()
	}
	return nil
}
