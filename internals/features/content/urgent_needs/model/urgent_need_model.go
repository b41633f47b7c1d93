package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UrgentNeedModel struct {
	UrgentNeedID           uuid.UUID  `gorm:"column:urgent_need_id;type:uuid;primaryKey" json:"urgent_need_id"`
	UrgentNeedTitle        string     `gorm:"column:urgent_need_title;type:varchar(200);not null" json:"urgent_need_title"`
	UrgentNeedDescription  string     `gorm:"column:urgent_need_description;type:text" json:"urgent_need_description"`
	UrgentNeedImageURL     string     `gorm:"column:urgent_need_image_url;type:text" json:"urgent_need_image_url"`
	UrgentNeedGoalAmount   float64    `gorm:"column:urgent_need_goal_amount;type:numeric(14,2);not null;default:0" json:"urgent_need_goal_amount"`
	UrgentNeedRaisedAmount float64    `gorm:"column:urgent_need_raised_amount;type:numeric(14,2);not null;default:0" json:"urgent_need_raised_amount"`
	UrgentNeedDeadline     *time.Time `gorm:"column:urgent_need_deadline" json:"urgent_need_deadline,omitempty"`
	UrgentNeedIsActive     bool       `gorm:"column:urgent_need_is_active;not null;index" json:"urgent_need_is_active"`
	CreatedAt              time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UrgentNeedModel) TableName() string {
	return "urgent_needs"
}

func (m *UrgentNeedModel) BeforeCreate(tx *gorm.DB) error {
	if m.UrgentNeedID == uuid.Nil {
		m.UrgentNeedID = uuid.New()
	}
	return nil
}
