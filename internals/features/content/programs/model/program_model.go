package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgramModel is a fundraising program. RaisedAmount is derived from
// completed donations and is never written by admin handlers.
type ProgramModel struct {
	ProgramID           uuid.UUID  `gorm:"column:program_id;type:uuid;primaryKey" json:"program_id"`
	ProgramName         string     `gorm:"column:program_name;type:varchar(200);not null" json:"program_name"`
	ProgramSlug         string     `gorm:"column:program_slug;type:varchar(220);not null;uniqueIndex" json:"program_slug"`
	ProgramDescription  string     `gorm:"column:program_description;type:text" json:"program_description"`
	ProgramImageURL     string     `gorm:"column:program_image_url;type:text" json:"program_image_url"`
	ProgramGoalAmount   float64    `gorm:"column:program_goal_amount;type:numeric(14,2);not null;default:0" json:"program_goal_amount"`
	ProgramRaisedAmount float64    `gorm:"column:program_raised_amount;type:numeric(14,2);not null;default:0" json:"program_raised_amount"`
	ProgramCategoryID   *uuid.UUID `gorm:"column:program_category_id;type:uuid;index" json:"program_category_id,omitempty"`
	ProgramIsActive     bool       `gorm:"column:program_is_active;not null" json:"program_is_active"`
	ProgramIsFeatured   bool       `gorm:"column:program_is_featured;not null" json:"program_is_featured"`

	Category *ProgramCategoryModel `gorm:"foreignKey:ProgramCategoryID;references:ID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProgramModel) TableName() string {
	return "programs"
}

func (m *ProgramModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProgramID == uuid.Nil {
		m.ProgramID = uuid.New()
	}
	return nil
}
