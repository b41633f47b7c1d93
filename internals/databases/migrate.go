package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	eventModel "amanah_backend/internals/features/content/events/model"
	galleryModel "amanah_backend/internals/features/content/gallery/model"
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
	authModel "amanah_backend/internals/features/users/auth/model"
)

// Models lists every table in migration order. Parents come before children.
func Models() []any {
	return []any{
		&authModel.UserModel{},
		&authModel.TokenBlacklist{},
		&programModel.ProgramCategoryModel{},
		&programModel.ProgramModel{},
		&urgentModel.UrgentNeedModel{},
		&subscriptionModel.DonationSubscription{},
		&donationModel.Donation{},
		&eventModel.EventModel{},
		&storyModel.StoryModel{},
		&testimonialModel.TestimonialModel{},
		&galleryModel.GalleryItemModel{},
		&slideModel.SlideModel{},
		&volunteerModel.VolunteerModel{},
		&contactModel.ContactSubmissionModel{},
		&newsletterModel.NewsletterSubscriptionModel{},
		&settingModel.SettingModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Info().Int("tables", len(Models())).Msg("schema migrated")
	return nil
}
