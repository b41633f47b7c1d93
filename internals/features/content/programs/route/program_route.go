package route

import (
	"amanah_backend/internals/features/content/programs/controller"
	"amanah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ProgramRoutes(api fiber.Router, db *gorm.DB, media *storage.Processor) {
	programs := controller.NewProgramController(db, media)
	categories := controller.NewProgramCategoryController(db)

	api.Get("/program-categories", categories.List)

	g := api.Group("/programs")
	g.Get("/", programs.List)
	g.Get("/:slug", programs.GetBySlug)
}

func AdminProgramRoutes(admin fiber.Router, db *gorm.DB, media *storage.Processor) {
	programs := controller.NewProgramController(db, media)
	categories := controller.NewProgramCategoryController(db)

	g := admin.Group("/programs")
	g.Get("/", programs.AdminList)
	g.Post("/", programs.Create)
	g.Get("/:id", programs.AdminGet)
	g.Patch("/:id", programs.Update)
	g.Delete("/:id", programs.Delete)

	cat := admin.Group("/program-categories")
	cat.Get("/", categories.List)
	cat.Post("/", categories.Create)
	cat.Patch("/:id", categories.Update)
	cat.Delete("/:id", categories.Delete)
}
