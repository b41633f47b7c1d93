package route

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	eventModel "amanah_backend/internals/features/content/events/model"
	programModel "amanah_backend/internals/features/content/programs/model"
	slideModel "amanah_backend/internals/features/content/slideshow/model"
	storyModel "amanah_backend/internals/features/content/stories/model"
	testimonialModel "amanah_backend/internals/features/content/testimonials/model"
	urgentModel "amanah_backend/internals/features/content/urgent_needs/model"
	donationModel "amanah_backend/internals/features/donations/donations/model"
	subscriptionModel "amanah_backend/internals/features/donations/subscriptions/model"
	contactModel "amanah_backend/internals/features/engagement/contacts/model"
	newsletterModel "amanah_backend/internals/features/engagement/newsletter/model"
	volunteerModel "amanah_backend/internals/features/engagement/volunteers/model"
	settingModel "amanah_backend/internals/features/settings/model"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t,
		&slideModel.SlideModel{}, &storyModel.StoryModel{}, &eventModel.EventModel{},
		&testimonialModel.TestimonialModel{}, &urgentModel.UrgentNeedModel{},
		&programModel.ProgramCategoryModel{}, &programModel.ProgramModel{},
		&settingModel.SettingModel{}, &donationModel.Donation{},
		&subscriptionModel.DonationSubscription{}, &volunteerModel.VolunteerModel{},
		&contactModel.ContactSubmissionModel{}, &newsletterModel.NewsletterSubscriptionModel{},
	)

	app := testutil.NewApp()
	api := app.Group("/api")
	HomeRoutes(api, db)
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("dashboard"), constants.AdminAndAbove...),
	)
	AdminDashboardRoutes(admin, db)
	return app, db
}

func titles(list []any, key string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.(map[string]any)[key].(string))
	}
	return out
}

func TestHomeAggregatesPublishedContent(t *testing.T) {
	app, db := setup(t)
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)

	require.NoError(t, db.Create(&[]slideModel.SlideModel{
		{SlideTitle: "Welcome", SlideImageURL: "https://cdn.test/a.webp", SlideIsActive: true},
		{SlideTitle: "Hidden", SlideImageURL: "https://cdn.test/b.webp"},
	}).Error)
	require.NoError(t, db.Create(&[]storyModel.StoryModel{
		{StoryTitle: "Featured", StorySlug: "featured", StoryIsPublished: true, StoryIsFeatured: true, StoryPublishedAt: &now},
		{StoryTitle: "Plain", StorySlug: "plain", StoryIsPublished: true, StoryPublishedAt: &now},
		{StoryTitle: "Draft", StorySlug: "draft", StoryIsFeatured: true},
	}).Error)
	require.NoError(t, db.Create(&[]eventModel.EventModel{
		{EventTitle: "Next", EventSlug: "next", EventStartAt: now.Add(48 * time.Hour), EventIsPublished: true},
		{EventTitle: "Gone", EventSlug: "gone", EventStartAt: now.Add(-72 * time.Hour), EventEndAt: &yesterday, EventIsPublished: true},
	}).Error)
	require.NoError(t, db.Create(&[]testimonialModel.TestimonialModel{
		{TestimonialName: "Approved", TestimonialContent: "Thank you", TestimonialIsApproved: true},
		{TestimonialName: "Pending", TestimonialContent: "Waiting"},
	}).Error)
	require.NoError(t, db.Create(&[]urgentModel.UrgentNeedModel{
		{UrgentNeedTitle: "Open", UrgentNeedGoalAmount: 100, UrgentNeedIsActive: true},
		{UrgentNeedTitle: "Expired", UrgentNeedGoalAmount: 100, UrgentNeedIsActive: true, UrgentNeedDeadline: &yesterday},
	}).Error)
	require.NoError(t, db.Create(&[]programModel.ProgramModel{
		{ProgramName: "Water", ProgramSlug: "water", ProgramGoalAmount: 1000, ProgramIsActive: true},
		{ProgramName: "Closed", ProgramSlug: "closed", ProgramGoalAmount: 1000},
	}).Error)
	require.NoError(t, db.Create(&[]settingModel.SettingModel{
		{SettingKey: "site.tagline", SettingValue: datatypes.JSON(`"Give with trust"`), SettingIsPublic: true},
		{SettingKey: "stripe.note", SettingValue: datatypes.JSON(`"internal"`)},
	}).Error)

	res := testutil.DoJSON(t, app, "GET", "/api/home", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	data := res.Data()

	assert.Equal(t, []string{"Welcome"}, titles(data["slides"].([]any), "title"))
	assert.Equal(t, []string{"featured"}, titles(data["featured_stories"].([]any), "slug"))
	assert.Equal(t, []string{"next"}, titles(data["upcoming_events"].([]any), "slug"))
	assert.Equal(t, []string{"Approved"}, titles(data["testimonials"].([]any), "name"))
	assert.Equal(t, []string{"Open"}, titles(data["urgent_needs"].([]any), "title"))
	assert.Equal(t, []string{"water"}, titles(data["programs"].([]any), "slug"))

	settings := data["settings"].(map[string]any)
	assert.Equal(t, "Give with trust", settings["site.tagline"])
	assert.NotContains(t, settings, "stripe.note")
}

func TestAdminDashboardTotals(t *testing.T) {
	app, db := setup(t)

	require.NoError(t, db.Create(&[]donationModel.Donation{
		{DonationDonorName: "A", DonationDonorEmail: "a@example.org", DonationAmount: 50, DonationCurrency: "usd", DonationOrderID: "o-1", DonationStatus: donationModel.StatusCompleted},
		{DonationDonorName: "B", DonationDonorEmail: "b@example.org", DonationAmount: 25.5, DonationCurrency: "usd", DonationOrderID: "o-2", DonationStatus: donationModel.StatusCompleted},
		{DonationDonorName: "C", DonationDonorEmail: "c@example.org", DonationAmount: 10, DonationCurrency: "usd", DonationOrderID: "o-3"},
		{DonationDonorName: "D", DonationDonorEmail: "d@example.org", DonationAmount: 10, DonationCurrency: "usd", DonationOrderID: "o-4", DonationStatus: donationModel.StatusFailed},
	}).Error)
	require.NoError(t, db.Create(&[]volunteerModel.VolunteerModel{
		{VolunteerFullName: "V1", VolunteerEmail: "v1@example.org"},
		{VolunteerFullName: "V2", VolunteerEmail: "v2@example.org", VolunteerStatus: volunteerModel.VolunteerApproved},
	}).Error)
	require.NoError(t, db.Create(&[]contactModel.ContactSubmissionModel{
		{ContactName: "C1", ContactEmail: "c1@example.org", ContactMessage: "hello"},
		{ContactName: "C2", ContactEmail: "c2@example.org", ContactMessage: "done", ContactIsResolved: true},
	}).Error)
	require.NoError(t, db.Create(&[]newsletterModel.NewsletterSubscriptionModel{
		{NewsletterEmail: "n1@example.org", NewsletterIsActive: true, NewsletterUnsubscribeToken: "t1"},
		{NewsletterEmail: "n2@example.org", NewsletterIsActive: true, NewsletterUnsubscribeToken: "t2"},
	}).Error)
	require.NoError(t, db.Create(&subscriptionModel.DonationSubscription{
		DonationSubscriptionDonorName:            "A",
		DonationSubscriptionDonorEmail:           "a@example.org",
		DonationSubscriptionAmount:               10,
		DonationSubscriptionCurrency:             "usd",
		DonationSubscriptionInterval:             subscriptionModel.IntervalMonth,
		DonationSubscriptionStripeSubscriptionID: "sub_1",
	}).Error)

	res := testutil.DoJSON(t, app, "GET", "/api/admin/dashboard", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	u := testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password123")
	res = testutil.DoJSON(t, app, "GET", "/api/admin/dashboard", nil, testutil.TokenFor(t, u))
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	data := res.Data()

	donations := data["donations"].(map[string]any)
	assert.InDelta(t, 75.5, donations["completed_amount"], 0.001)
	assert.EqualValues(t, 2, donations["completed_count"])
	assert.EqualValues(t, 1, donations["pending_count"])
	assert.EqualValues(t, 1, data["pending_volunteers"])
	assert.EqualValues(t, 1, data["unresolved_contacts"])
	assert.EqualValues(t, 2, data["active_subscribers"])
	assert.EqualValues(t, 1, data["active_recurring_donations"])
}
