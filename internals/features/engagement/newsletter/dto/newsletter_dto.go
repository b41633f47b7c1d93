package dto

import (
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/engagement/newsletter/model"
)

type SubscribeRequest struct {
	Email string `json:"email" form:"email" validate:"required,email,max=255"`
	Name  string `json:"name" form:"name" validate:"max=150"`
}

type UnsubscribeRequest struct {
	Token string `json:"token" form:"token" query:"token" validate:"required,max=64"`
}

type SubscriberResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	IsActive       bool       `json:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

func ToSubscriberResponse(m model.NewsletterSubscriptionModel) SubscriberResponse {
	return SubscriberResponse{
		ID:             m.NewsletterID,
		Email:          m.NewsletterEmail,
		Name:           m.NewsletterName,
		IsActive:       m.NewsletterIsActive,
		SubscribedAt:   m.NewsletterSubscribedAt,
		UnsubscribedAt: m.NewsletterUnsubscribedAt,
	}
}
