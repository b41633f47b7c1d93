package dto

import (
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/content/testimonials/model"
)

// SubmitTestimonialRequest is the public form; the photo file travels as "photo".
type SubmitTestimonialRequest struct {
	Name    string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Role    string `json:"role" form:"role" validate:"max=100"`
	Content string `json:"content" form:"content" validate:"required,min=10,max=2000"`
	Rating  int    `json:"rating" form:"rating" validate:"omitempty,min=1,max=5"`
}

type CreateTestimonialRequest struct {
	SubmitTestimonialRequest
	PhotoURL   string `json:"photo_url" form:"photo_url" validate:"omitempty,url"`
	IsApproved *bool  `json:"is_approved" form:"is_approved"`
}

type UpdateTestimonialRequest struct {
	Name       *string `json:"name" form:"name" validate:"omitempty,min=2,max=100"`
	Role       *string `json:"role" form:"role" validate:"omitempty,max=100"`
	Content    *string `json:"content" form:"content" validate:"omitempty,min=10,max=2000"`
	Rating     *int    `json:"rating" form:"rating" validate:"omitempty,min=1,max=5"`
	PhotoURL   *string `json:"photo_url" form:"photo_url" validate:"omitempty,url"`
	IsApproved *bool   `json:"is_approved" form:"is_approved"`
}

type ApproveRequest struct {
	IsApproved *bool `json:"is_approved"`
}

type TestimonialResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	PhotoURL   string    `json:"photo_url"`
	Rating     int       `json:"rating"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToTestimonialResponse(m model.TestimonialModel) TestimonialResponse {
	return TestimonialResponse{
		ID:         m.TestimonialID,
		Name:       m.TestimonialName,
		Role:       m.TestimonialRole,
		Content:    m.TestimonialContent,
		PhotoURL:   m.TestimonialPhotoURL,
		Rating:     m.TestimonialRating,
		IsApproved: m.TestimonialIsApproved,
		CreatedAt:  m.CreatedAt,
	}
}

func ToTestimonialResponses(rows []model.TestimonialModel) []TestimonialResponse {
	out := make([]TestimonialResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToTestimonialResponse(r))
	}
	return out
}
