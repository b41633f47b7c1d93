package service

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/features/users/auth/dto"
	authModel "amanah_backend/internals/features/users/auth/model"
	helper "amanah_backend/internals/helpers"
	helperAuth "amanah_backend/internals/helpers/auth"
	"amanah_backend/internals/helpers/mailer"
)

// GoogleIdentity is what we keep from a verified Google ID token.
type GoogleIdentity struct {
	Email string
	Name  string
	Sub   string
}

type GoogleVerifier func(idToken, clientID string) (GoogleIdentity, error)

// VerifyGoogleIDToken checks signature, audience and expiry against Google's certs.
func VerifyGoogleIDToken(idToken, clientID string) (GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return GoogleIdentity{}, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return GoogleIdentity{}, err
	}
	return GoogleIdentity{Email: claimSet.Email, Name: claimSet.Name, Sub: claimSet.Sub}, nil
}

type AuthService struct {
	DB           *gorm.DB
	Mailer       mailer.Mailer
	VerifyGoogle GoogleVerifier
}

func NewAuthService(db *gorm.DB, m mailer.Mailer) *AuthService {
	return &AuthService{DB: db, Mailer: m, VerifyGoogle: VerifyGoogleIDToken}
}

func nowUTC() time.Time { return time.Now().UTC() }

/* ==========================
   REGISTER / VERIFY
========================== */

func (s *AuthService) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.DB.Model(&authModel.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check email")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "email already registered")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "password hashing failed")
	}
	token := RandomToken(24)
	user := authModel.UserModel{
		FullName:         strings.TrimSpace(req.FullName),
		Email:            email,
		PasswordHash:     hash,
		IsActive:         true,
		EmailVerifyToken: &token,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create user")
	}

	msg, err := mailer.Build("verify", "Verify your email", user.FullName, user.Email, mailer.Data{
		Org:  configs.OrgName,
		Name: user.FullName,
		Link: configs.FrontendURL + "/verify-email?token=" + token,
	})
	if err == nil {
		mailer.SendAsync(s.Mailer, msg)
	} else {
		log.Error().Err(err).Msg("render verification email")
	}

	return helper.JsonCreated(c, "registration successful, please verify your email", dto.ToUserResponse(user))
}

func (s *AuthService) VerifyEmail(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "token is required")
	}
	res := s.DB.Model(&authModel.UserModel{}).
		Where("email_verify_token = ?", token).
		Updates(map[string]any{"email_verified": true, "email_verify_token": nil})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to verify email")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid or used verification token")
	}
	return helper.JsonOK(c, "email verified", nil)
}

/* ==========================
   LOGIN
========================== */

func (s *AuthService) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}

	var user authModel.UserModel
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Take(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}
	if err != nil || !CheckPassword(user.PasswordHash, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	return s.issue(c, &user)
}

func (s *AuthService) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "google sign-in is not configured")
	}
	id, err := s.VerifyGoogle(req.IDToken, configs.GoogleClientID)
	if err != nil || id.Sub == "" || id.Email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid Google ID token")
	}
	email := strings.ToLower(strings.TrimSpace(id.Email))

	var user authModel.UserModel
	err = s.DB.Where("google_id = ?", id.Sub).Or("email = ?", email).Order("google_id IS NULL").Take(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, herr := HashPassword(RandomToken(16))
		if herr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "password hashing failed")
		}
		name := strings.TrimSpace(id.Name)
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		user = authModel.UserModel{
			FullName:      name,
			Email:         email,
			PasswordHash:  hash,
			IsActive:      true,
			EmailVerified: true,
			GoogleID:      &id.Sub,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.JsonError(c, fiber.StatusConflict, "email already registered")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create Google user")
		}
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	case user.GoogleID == nil:
		// Link an existing email account to this Google identity. A password
		// set before the address was proven may belong to someone else.
		updates := map[string]any{"google_id": id.Sub, "email_verified": true}
		if !user.EmailVerified {
			hash, herr := HashPassword(RandomToken(32))
			if herr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "password hashing failed")
			}
			updates["password_hash"] = hash
			user.PasswordHash = hash
		}
		if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to link Google account")
		}
		user.GoogleID = &id.Sub
		user.EmailVerified = true
	}
	return s.issue(c, &user)
}

func (s *AuthService) issue(c *fiber.Ctx, user *authModel.UserModel) error {
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "your account has been deactivated")
	}
	now := nowUTC()
	token, exp, err := IssueAccessToken(*user, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}
	if err := s.DB.Model(user).Update("last_login_at", now).Error; err != nil {
		log.Warn().Err(err).Msg("update last_login_at")
	}
	user.LastLoginAt = &now

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   configs.AppEnv != "development",
		SameSite: "Lax",
		Path:     "/",
		Expires:  exp,
	})
	return helper.JsonOK(c, "login successful", dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        dto.ToUserResponse(*user),
	})
}

/* ==========================
   ME / PASSWORD / LOGOUT
========================== */

func (s *AuthService) Me(c *fiber.Ctx) error {
	uid, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	var user authModel.UserModel
	if err := s.DB.First(&user, "id = ?", uid).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "user not found")
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(user))
}

func (s *AuthService) ChangePassword(c *fiber.Ctx) error {
	uid, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	var user authModel.UserModel
	if err := s.DB.First(&user, "id = ?", uid).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "user not found")
	}
	if !CheckPassword(user.PasswordHash, req.OldPassword) {
		return helper.JsonError(c, fiber.StatusBadRequest, "old password is incorrect")
	}
	if req.OldPassword == req.NewPassword {
		return helper.JsonError(c, fiber.StatusBadRequest, "new password must differ from the old one")
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "password hashing failed")
	}
	if err := s.DB.Model(&user).Update("password_hash", hash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update password")
	}
	return helper.JsonOK(c, "password updated", nil)
}

func (s *AuthService) Logout(c *fiber.Ctx) error {
	raw := helperAuth.GetRawAccessToken(c)
	if raw != "" {
		exp := TokenExpiry(raw)
		if exp.IsZero() || exp.Before(nowUTC()) {
			exp = nowUTC().Add(time.Hour)
		}
		if err := helperAuth.Blacklist(c.UserContext(), s.DB, raw, configs.JWTSecret, exp); err != nil {
			log.Warn().Err(err).Msg("failed to blacklist token")
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Path:     "/",
		Expires:  nowUTC().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "logout successful", nil)
}
