package dto

import (
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/engagement/contacts/model"
)

type SubmitContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required,min=2,max=150"`
	Email   string `json:"email" form:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" form:"subject" validate:"max=200"`
	Message string `json:"message" form:"message" validate:"required,min=5,max=5000"`
}

type ReplyContactRequest struct {
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,min=2,max=10000"`
	// Resolve also marks the submission resolved; defaults to true.
	Resolve *bool `json:"resolve"`
}

type ContactResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Subject      string     `json:"subject"`
	Message      string     `json:"message"`
	IsResolved   bool       `json:"is_resolved"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ReplyMessage string     `json:"reply_message,omitempty"`
	RepliedAt    *time.Time `json:"replied_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ToContactResponse(m model.ContactSubmissionModel) ContactResponse {
	return ContactResponse{
		ID:           m.ContactID,
		Name:         m.ContactName,
		Email:        m.ContactEmail,
		Subject:      m.ContactSubject,
		Message:      m.ContactMessage,
		IsResolved:   m.ContactIsResolved,
		ResolvedAt:   m.ContactResolvedAt,
		ReplyMessage: m.ContactReplyMessage,
		RepliedAt:    m.ContactRepliedAt,
		CreatedAt:    m.CreatedAt,
	}
}
