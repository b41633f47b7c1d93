package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestimonialModel struct {
	TestimonialID         uuid.UUID `gorm:"column:testimonial_id;type:uuid;primaryKey" json:"testimonial_id"`
	TestimonialName       string    `gorm:"column:testimonial_name;type:varchar(100);not null" json:"testimonial_name"`
	TestimonialRole       string    `gorm:"column:testimonial_role;type:varchar(100)" json:"testimonial_role"`
	TestimonialContent    string    `gorm:"column:testimonial_content;type:text;not null" json:"testimonial_content"`
	TestimonialPhotoURL   string    `gorm:"column:testimonial_photo_url;type:text" json:"testimonial_photo_url"`
	TestimonialRating     int       `gorm:"column:testimonial_rating;not null;check:testimonial_rating BETWEEN 1 AND 5" json:"testimonial_rating"`
	TestimonialIsApproved bool      `gorm:"column:testimonial_is_approved;not null;index" json:"testimonial_is_approved"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TestimonialModel) TableName() string {
	return "testimonials"
}

func (m *TestimonialModel) BeforeCreate(tx *gorm.DB) error {
	if m.TestimonialID == uuid.Nil {
		m.TestimonialID = uuid.New()
	}
	if m.TestimonialRating == 0 {
		m.TestimonialRating = 5
	}
	return nil
}
