package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsletterSubscriptionModel struct {
	NewsletterID               uuid.UUID  `gorm:"column:newsletter_id;type:uuid;primaryKey" json:"newsletter_id"`
	NewsletterEmail            string     `gorm:"column:newsletter_email;type:varchar(255);not null;uniqueIndex" json:"newsletter_email"`
	NewsletterName             string     `gorm:"column:newsletter_name;type:varchar(150)" json:"newsletter_name"`
	NewsletterIsActive         bool       `gorm:"column:newsletter_is_active;not null;index" json:"newsletter_is_active"`
	NewsletterUnsubscribeToken string     `gorm:"column:newsletter_unsubscribe_token;type:varchar(64);not null;uniqueIndex" json:"-"`
	NewsletterSubscribedAt     time.Time  `gorm:"column:newsletter_subscribed_at;not null" json:"newsletter_subscribed_at"`
	NewsletterUnsubscribedAt   *time.Time `gorm:"column:newsletter_unsubscribed_at" json:"newsletter_unsubscribed_at,omitempty"`
	CreatedAt                  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt                  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (NewsletterSubscriptionModel) TableName() string {
	return "newsletter_subscriptions"
}

func (m *NewsletterSubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.NewsletterID == uuid.Nil {
		m.NewsletterID = uuid.New()
	}
	return nil
}
