package dto

import (
	"encoding/json"
	"time"

	"amanah_backend/internals/features/settings/model"
)

// UpsertSettingRequest: Value is any JSON document.
type UpsertSettingRequest struct {
	Value       json.RawMessage `json:"value" validate:"required"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	IsPublic    *bool           `json:"is_public"`
}

type SettingResponse struct {
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description"`
	IsPublic    bool            `json:"is_public"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToSettingResponse(m model.SettingModel) SettingResponse {
	return SettingResponse{
		Key:         m.SettingKey,
		Value:       json.RawMessage(m.SettingValue),
		Description: m.SettingDescription,
		IsPublic:    m.SettingIsPublic,
		UpdatedAt:   m.UpdatedAt,
	}
}
