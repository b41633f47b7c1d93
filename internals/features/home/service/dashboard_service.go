package service

import (
	"context"

	"gorm.io/gorm"

	donationModel "amanah_backend/internals/features/donations/donations/model"
	subscriptionModel "amanah_backend/internals/features/donations/subscriptions/model"
	contactModel "amanah_backend/internals/features/engagement/contacts/model"
	newsletterModel "amanah_backend/internals/features/engagement/newsletter/model"
	volunteerModel "amanah_backend/internals/features/engagement/volunteers/model"
)

type DonationTotals struct {
	CompletedAmount float64 `json:"completed_amount"`
	CompletedCount  int64   `json:"completed_count"`
	PendingCount    int64   `json:"pending_count"`
}

type Dashboard struct {
	Donations            DonationTotals `json:"donations"`
	PendingVolunteers    int64          `json:"pending_volunteers"`
	UnresolvedContacts   int64          `json:"unresolved_contacts"`
	ActiveSubscribers    int64          `json:"active_subscribers"`
	ActiveRecurringGifts int64          `json:"active_recurring_donations"`
}

func BuildDashboard(ctx context.Context, db *gorm.DB) (*Dashboard, error) {
	db = db.WithContext(ctx)
	out := &Dashboard{}

	var completed struct {
		Amount float64
		Count  int64
	}
	if err := db.Model(&donationModel.Donation{}).
		Select("COALESCE(SUM(donation_amount), 0) AS amount, COUNT(*) AS count").
		Where("donation_status = ?", donationModel.StatusCompleted).
		Scan(&completed).Error; err != nil {
		return nil, err
	}
	out.Donations.CompletedAmount = completed.Amount
	out.Donations.CompletedCount = completed.Count

	counts := []struct {
		dst   *int64
		model any
		where string
		arg   any
	}{
		{&out.Donations.PendingCount, &donationModel.Donation{}, "donation_status = ?", donationModel.StatusPending},
		{&out.PendingVolunteers, &volunteerModel.VolunteerModel{}, "volunteer_status = ?", volunteerModel.VolunteerPending},
		{&out.UnresolvedContacts, &contactModel.ContactSubmissionModel{}, "contact_is_resolved = ?", false},
		{&out.ActiveSubscribers, &newsletterModel.NewsletterSubscriptionModel{}, "newsletter_is_active = ?", true},
		{&out.ActiveRecurringGifts, &subscriptionModel.DonationSubscription{}, "donation_subscription_status = ?", subscriptionModel.SubscriptionActive},
	}
	for _, q := range counts {
		if err := db.Model(q.model).Where(q.where, q.arg).Count(q.dst).Error; err != nil {
			return nil, err
		}
	}
	return out, nil
}
