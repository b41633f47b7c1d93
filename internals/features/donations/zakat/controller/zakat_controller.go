package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"amanah_backend/internals/features/donations/zakat/dto"
	"amanah_backend/internals/features/donations/zakat/service"
	helper "amanah_backend/internals/helpers"
)

type ZakatController struct{}

func NewZakatController() *ZakatController {
	return &ZakatController{}
}

// POST /zakat/calculate
func (ctrl *ZakatController) Calculate(c *fiber.Ctx) error {
	var req dto.ZakatRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	out := dto.ZakatResponse{Result: service.Calculate(req.ToInput())}
	if req.Currency != "" {
		out.Currency = strings.ToUpper(req.Currency)
		out.TotalFormatted = helper.FormatMoney(out.Total, req.Currency)
	}
	return helper.JsonOK(c, "zakat calculated", out)
}
