package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlideModel struct {
	SlideID        uuid.UUID `gorm:"column:slide_id;type:uuid;primaryKey" json:"slide_id"`
	SlideTitle     string    `gorm:"column:slide_title;type:varchar(200);not null" json:"slide_title"`
	SlideSubtitle  string    `gorm:"column:slide_subtitle;type:varchar(300)" json:"slide_subtitle"`
	SlideImageURL  string    `gorm:"column:slide_image_url;type:text;not null" json:"slide_image_url"`
	SlideLinkURL   string    `gorm:"column:slide_link_url;type:text" json:"slide_link_url"`
	SlideSortOrder int       `gorm:"column:slide_sort_order;not null;default:0;index" json:"slide_sort_order"`
	SlideIsActive  bool      `gorm:"column:slide_is_active;not null" json:"slide_is_active"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SlideModel) TableName() string {
	return "slideshow_slides"
}

func (m *SlideModel) BeforeCreate(tx *gorm.DB) error {
	if m.SlideID == uuid.Nil {
		m.SlideID = uuid.New()
	}
	return nil
}
