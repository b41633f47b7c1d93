package details

import (
	eventRoute "amanah_backend/internals/features/content/events/route"
	galleryRoute "amanah_backend/internals/features/content/gallery/route"
	programRoute "amanah_backend/internals/features/content/programs/route"
	slideRoute "amanah_backend/internals/features/content/slideshow/route"
	storyRoute "amanah_backend/internals/features/content/stories/route"
	testimonialRoute "amanah_backend/internals/features/content/testimonials/route"
	urgentRoute "amanah_backend/internals/features/content/urgent_needs/route"
	"amanah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ContentRoutes(api, admin fiber.Router, db *gorm.DB, media *storage.Processor) {
	eventRoute.EventRoutes(api, db, media)
	eventRoute.AdminEventRoutes(admin, db, media)

	storyRoute.StoryRoutes(api, db, media)
	storyRoute.AdminStoryRoutes(admin, db, media)

	testimonialRoute.TestimonialRoutes(api, db, media)
	testimonialRoute.AdminTestimonialRoutes(admin, db, media)

	galleryRoute.GalleryRoutes(api, db, media)
	galleryRoute.AdminGalleryRoutes(admin, db, media)

	programRoute.ProgramRoutes(api, db, media)
	programRoute.AdminProgramRoutes(admin, db, media)

	slideRoute.SlideRoutes(api, db, media)
	slideRoute.AdminSlideRoutes(admin, db, media)

	urgentRoute.UrgentNeedRoutes(api, db, media)
	urgentRoute.AdminUrgentNeedRoutes(admin, db, media)
}
