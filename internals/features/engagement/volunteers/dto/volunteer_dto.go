package dto

import (
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/engagement/volunteers/model"
)

type ApplyVolunteerRequest struct {
	FullName     string `json:"full_name" form:"full_name" validate:"required,min=2,max=150"`
	Email        string `json:"email" form:"email" validate:"required,email,max=255"`
	Phone        string `json:"phone" form:"phone" validate:"omitempty,max=30"`
	Interests    string `json:"interests" form:"interests" validate:"max=1000"`
	Availability string `json:"availability" form:"availability" validate:"max=200"`
	Message      string `json:"message" form:"message" validate:"max=4000"`
}

type UpdateVolunteerStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,oneof=pending approved rejected"`
}

type VolunteerResponse struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Interests    string    `json:"interests"`
	Availability string    `json:"availability"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToVolunteerResponse(m model.VolunteerModel) VolunteerResponse {
	return VolunteerResponse{
		ID:           m.VolunteerID,
		FullName:     m.VolunteerFullName,
		Email:        m.VolunteerEmail,
		Phone:        m.VolunteerPhone,
		Interests:    m.VolunteerInterests,
		Availability: m.VolunteerAvailability,
		Message:      m.VolunteerMessage,
		Status:       m.VolunteerStatus,
		CreatedAt:    m.CreatedAt,
	}
}
