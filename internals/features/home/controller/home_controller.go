package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/features/home/service"
	helper "amanah_backend/internals/helpers"
)

type HomeController struct {
	DB *gorm.DB
}

func NewHomeController(db *gorm.DB) *HomeController {
	return &HomeController{DB: db}
}

// GET /home
func (ctrl *HomeController) Home(c *fiber.Ctx) error {
	home, err := service.BuildHome(c.UserContext(), ctrl.DB, service.DefaultLimits)
	if err != nil {
		log.Error().Err(err).Msg("build home")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load home page")
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=60, stale-while-revalidate=120")
	return helper.JsonOK(c, "ok", home)
}

// GET /admin/dashboard
func (ctrl *HomeController) Dashboard(c *fiber.Ctx) error {
	out, err := service.BuildDashboard(c.UserContext(), ctrl.DB)
	if err != nil {
		log.Error().Err(err).Msg("build dashboard")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}
	return helper.JsonOK(c, "ok", out)
}
