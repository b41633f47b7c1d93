package route

import (
	"amanah_backend/internals/features/donations/zakat/controller"

	"github.com/gofiber/fiber/v2"
)

func ZakatRoutes(api fiber.Router) {
	ctrl := controller.NewZakatController()

	api.Post("/zakat/calculate", ctrl.Calculate)
}
