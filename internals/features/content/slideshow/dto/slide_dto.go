package dto

import (
	"github.com/google/uuid"

	"amanah_backend/internals/features/content/slideshow/model"
)

type CreateSlideRequest struct {
	Title     string `json:"title" form:"title" validate:"required,min=2,max=200"`
	Subtitle  string `json:"subtitle" form:"subtitle" validate:"max=300"`
	ImageURL  string `json:"image_url" form:"image_url" validate:"omitempty,url"`
	LinkURL   string `json:"link_url" form:"link_url" validate:"omitempty,max=500"`
	SortOrder *int   `json:"sort_order" form:"sort_order"`
	IsActive  *bool  `json:"is_active" form:"is_active"`
}

type UpdateSlideRequest struct {
	Title     *string `json:"title" form:"title" validate:"omitempty,min=2,max=200"`
	Subtitle  *string `json:"subtitle" form:"subtitle" validate:"omitempty,max=300"`
	ImageURL  *string `json:"image_url" form:"image_url" validate:"omitempty,url"`
	LinkURL   *string `json:"link_url" form:"link_url" validate:"omitempty,max=500"`
	SortOrder *int    `json:"sort_order" form:"sort_order"`
	IsActive  *bool   `json:"is_active" form:"is_active"`
}

// ReorderRequest lists slide ids in display order.
type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,dive,required"`
}

type SlideResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
}

func ToSlideResponse(m model.SlideModel) SlideResponse {
	return SlideResponse{
		ID:        m.SlideID,
		Title:     m.SlideTitle,
		Subtitle:  m.SlideSubtitle,
		ImageURL:  m.SlideImageURL,
		LinkURL:   m.SlideLinkURL,
		SortOrder: m.SlideSortOrder,
		IsActive:  m.SlideIsActive,
	}
}

func ToSlideResponses(rows []model.SlideModel) []SlideResponse {
	out := make([]SlideResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToSlideResponse(r))
	}
	return out
}
