package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgramCategoryModel struct {
	ID                         uuid.UUID `gorm:"column:program_category_id;type:uuid;primaryKey" json:"program_category_id"`
	ProgramCategoryName        string    `gorm:"column:program_category_name;type:varchar(100);not null" json:"program_category_name"`
	ProgramCategorySlug        string    `gorm:"column:program_category_slug;type:varchar(120);not null;uniqueIndex" json:"program_category_slug"`
	ProgramCategoryDescription string    `gorm:"column:program_category_description;type:text" json:"program_category_description"`
	ProgramCategorySortOrder   int       `gorm:"column:program_category_sort_order;not null;default:0" json:"program_category_sort_order"`
	CreatedAt                  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt                  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProgramCategoryModel) TableName() string {
	return "program_categories"
}

func (m *ProgramCategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
