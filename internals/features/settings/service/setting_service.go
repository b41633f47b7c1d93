package service

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"amanah_backend/internals/features/settings/model"
)

// PublicMap returns public settings keyed by name.
func PublicMap(ctx context.Context, db *gorm.DB) (map[string]json.RawMessage, error) {
	var rows []model.SettingModel
	if err := db.WithContext(ctx).Where("setting_is_public = ?", true).Order("setting_key").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(rows))
	for _, r := range rows {
		out[r.SettingKey] = json.RawMessage(r.SettingValue)
	}
	return out, nil
}

// Default is a setting created on first boot when the key is absent.
type Default struct {
	Key         string
	Value       any
	Description string
	IsPublic    bool
}

// EnsureDefaults inserts missing keys and leaves existing values alone.
func EnsureDefaults(ctx context.Context, db *gorm.DB, defaults []Default) error {
	for _, d := range defaults {
		raw, err := json.Marshal(d.Value)
		if err != nil {
			return err
		}
		row := model.SettingModel{
			SettingKey:         d.Key,
			SettingValue:       datatypes.JSON(raw),
			SettingDescription: d.Description,
			SettingIsPublic:    d.IsPublic,
		}
		if err := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "setting_key"}}, DoNothing: true}).
			Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
