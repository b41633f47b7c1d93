package dto

import (
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/content/urgent_needs/model"
)

type CreateUrgentNeedRequest struct {
	Title       string  `json:"title" form:"title" validate:"required,min=2,max=200"`
	Description string  `json:"description" form:"description"`
	ImageURL    string  `json:"image_url" form:"image_url" validate:"omitempty,url"`
	GoalAmount  float64 `json:"goal_amount" form:"goal_amount" validate:"gte=0"`
	Deadline    string  `json:"deadline" form:"deadline"`
	IsActive    *bool   `json:"is_active" form:"is_active"`
}

type UpdateUrgentNeedRequest struct {
	Title       *string  `json:"title" form:"title" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" form:"description"`
	ImageURL    *string  `json:"image_url" form:"image_url" validate:"omitempty,url"`
	GoalAmount  *float64 `json:"goal_amount" form:"goal_amount" validate:"omitempty,gte=0"`
	// Deadline "" clears it.
	Deadline *string `json:"deadline" form:"deadline"`
	IsActive *bool   `json:"is_active" form:"is_active"`
}

type UrgentNeedResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"image_url"`
	GoalAmount   float64    `json:"goal_amount"`
	RaisedAmount float64    `json:"raised_amount"`
	Remaining    float64    `json:"remaining"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ToUrgentNeedResponse(m model.UrgentNeedModel) UrgentNeedResponse {
	remaining := m.UrgentNeedGoalAmount - m.UrgentNeedRaisedAmount
	if remaining < 0 {
		remaining = 0
	}
	return UrgentNeedResponse{
		ID:           m.UrgentNeedID,
		Title:        m.UrgentNeedTitle,
		Description:  m.UrgentNeedDescription,
		ImageURL:     m.UrgentNeedImageURL,
		GoalAmount:   m.UrgentNeedGoalAmount,
		RaisedAmount: m.UrgentNeedRaisedAmount,
		Remaining:    remaining,
		Deadline:     m.UrgentNeedDeadline,
		IsActive:     m.UrgentNeedIsActive,
		CreatedAt:    m.CreatedAt,
	}
}

func ToUrgentNeedResponses(rows []model.UrgentNeedModel) []UrgentNeedResponse {
	out := make([]UrgentNeedResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToUrgentNeedResponse(r))
	}
	return out
}
