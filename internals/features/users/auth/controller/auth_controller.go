package controller

import (
	"amanah_backend/internals/features/users/auth/service"
	"amanah_backend/internals/helpers/mailer"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB      *gorm.DB
	Service *service.AuthService
}

func NewAuthController(db *gorm.DB, m mailer.Mailer) *AuthController {
	return &AuthController{DB: db, Service: service.NewAuthService(db, m)}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return ac.Service.Register(c)
}

func (ac *AuthController) VerifyEmail(c *fiber.Ctx) error {
	return ac.Service.VerifyEmail(c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return ac.Service.Login(c)
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return ac.Service.LoginGoogle(c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return ac.Service.Logout(c)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	return ac.Service.Me(c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return ac.Service.ChangePassword(c)
}

/* ===== admin ===== */

func (ac *AuthController) ListUsers(c *fiber.Ctx) error {
	return ac.Service.ListUsers(c)
}

func (ac *AuthController) CreateUser(c *fiber.Ctx) error {
	return ac.Service.CreateUser(c)
}

func (ac *AuthController) UpdateUser(c *fiber.Ctx) error {
	return ac.Service.UpdateUser(c)
}

func (ac *AuthController) DeleteUser(c *fiber.Ctx) error {
	return ac.Service.DeleteUser(c)
}
