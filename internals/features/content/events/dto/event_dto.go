package dto

import (
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/content/events/model"
)

// Requests accept JSON or multipart; the image file travels as "image".
type CreateEventRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=3,max=200"`
	Slug        string `json:"slug" form:"slug" validate:"omitempty,max=220"`
	Description string `json:"description" form:"description"`
	Location    string `json:"location" form:"location" validate:"max=255"`
	StartAt     string `json:"start_at" form:"start_at" validate:"required"`
	EndAt       string `json:"end_at" form:"end_at"`
	ImageURL    string `json:"image_url" form:"image_url" validate:"omitempty,url"`
	IsPublished *bool  `json:"is_published" form:"is_published"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=3,max=200"`
	Slug        *string `json:"slug" form:"slug" validate:"omitempty,max=220"`
	Description *string `json:"description" form:"description"`
	Location    *string `json:"location" form:"location" validate:"omitempty,max=255"`
	StartAt     *string `json:"start_at" form:"start_at"`
	EndAt       *string `json:"end_at" form:"end_at"`
	ImageURL    *string `json:"image_url" form:"image_url" validate:"omitempty,url"`
	IsPublished *bool   `json:"is_published" form:"is_published"`
}

type EventResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	ImageURL    string     `json:"image_url"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToEventResponse(m model.EventModel) EventResponse {
	return EventResponse{
		ID:          m.EventID,
		Title:       m.EventTitle,
		Slug:        m.EventSlug,
		Description: m.EventDescription,
		Location:    m.EventLocation,
		StartAt:     m.EventStartAt,
		EndAt:       m.EventEndAt,
		ImageURL:    m.EventImageURL,
		IsPublished: m.EventIsPublished,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToEventResponses(rows []model.EventModel) []EventResponse {
	out := make([]EventResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToEventResponse(r))
	}
	return out
}
