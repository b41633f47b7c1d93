package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SettingModel is a key/value pair. Public settings are served to the site
// without auth (GET /settings, /home).
type SettingModel struct {
	SettingID          uuid.UUID      `gorm:"column:setting_id;type:uuid;primaryKey" json:"setting_id"`
	SettingKey         string         `gorm:"column:setting_key;type:varchar(100);not null;uniqueIndex" json:"setting_key"`
	SettingValue       datatypes.JSON `gorm:"column:setting_value;not null" json:"setting_value"`
	SettingDescription string         `gorm:"column:setting_description;type:text" json:"setting_description"`
	SettingIsPublic    bool           `gorm:"column:setting_is_public;not null;index" json:"setting_is_public"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SettingModel) TableName() string {
	return "settings"
}

func (m *SettingModel) BeforeCreate(tx *gorm.DB) error {
	if m.SettingID == uuid.Nil {
		m.SettingID = uuid.New()
	}
	return nil
}
