package route

import (
	"errors"
	"net/mail"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/constants"
	authModel "amanah_backend/internals/features/users/auth/model"
	"amanah_backend/internals/features/users/auth/service"
	"amanah_backend/internals/helpers/mailer"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB, *mailer.ConsoleMailer) {
	t.Helper()
	db := testutil.NewDB(t)
	m := mailer.NewConsoleMailer(mail.Address{Address: "no-reply@example.org"})
	app := testutil.NewApp()
	api := app.Group("/api")
	AuthRoutes(api, db, m)
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("users"), constants.AdminAndAbove...),
	)
	AdminUserRoutes(admin, db, m)
	return app, db, m
}

func TestRegisterCreatesUserAndSendsVerification(t *testing.T) {
	app, db, m := setup(t)

	res := testutil.DoJSON(t, app, "POST", "/api/auth/register", map[string]any{
		"full_name": "Siti Aminah",
		"email":     "Siti@Example.org",
		"password":  "supersecret",
	}, "")
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "siti@example.org", res.Data()["email"])
	assert.Equal(t, constants.RoleUser, res.Data()["role"])
	assert.Equal(t, false, res.Data()["email_verified"])

	var u authModel.UserModel
	require.NoError(t, db.First(&u, "email = ?", "siti@example.org").Error)
	require.NotNil(t, u.EmailVerifyToken)
	assert.NotEqual(t, "supersecret", u.PasswordHash)

	assert.Eventually(t, func() bool { return len(m.Sent()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Contains(t, m.Sent()[0].TextContent, *u.EmailVerifyToken)

	dup := testutil.DoJSON(t, app, "POST", "/api/auth/register", map[string]any{
		"full_name": "Other",
		"email":     "siti@example.org",
		"password":  "supersecret",
	}, "")
	assert.Equal(t, fiber.StatusConflict, dup.Status)
}

func TestRegisterValidation(t *testing.T) {
	app, _, _ := setup(t)
	res := testutil.DoJSON(t, app, "POST", "/api/auth/register", map[string]any{
		"full_name": "A",
		"email":     "not-an-email",
		"password":  "short",
	}, "")
	require.Equal(t, fiber.StatusUnprocessableEntity, res.Status)
	errs, _ := res.Body["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestVerifyEmail(t *testing.T) {
	app, db, _ := setup(t)
	tok := "abc123"
	u := testutil.CreateUser(t, db, constants.RoleUser, "v@example.org", "password1")
	require.NoError(t, db.Model(&u).Updates(map[string]any{"email_verified": false, "email_verify_token": tok}).Error)

	res := testutil.DoJSON(t, app, "GET", "/api/auth/verify-email?token="+tok, nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)

	require.NoError(t, db.First(&u, "id = ?", u.ID).Error)
	assert.True(t, u.EmailVerified)
	assert.Nil(t, u.EmailVerifyToken)

	again := testutil.DoJSON(t, app, "GET", "/api/auth/verify-email?token="+tok, nil, "")
	assert.Equal(t, fiber.StatusBadRequest, again.Status)
}

func TestLoginWrongPasswordReturns401(t *testing.T) {
	app, db, _ := setup(t)
	testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "correct-horse")

	res := testutil.DoJSON(t, app, "POST", "/api/auth/login", map[string]any{
		"email": "admin@example.org", "password": "wrong-password",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
	assert.Equal(t, false, res.Body["success"])

	unknown := testutil.DoJSON(t, app, "POST", "/api/auth/login", map[string]any{
		"email": "nobody@example.org", "password": "whatever",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, unknown.Status)
}

func TestLoginSuccessAndMe(t *testing.T) {
	app, db, _ := setup(t)
	u := testutil.CreateUser(t, db, constants.RoleUser, "donor@example.org", "correct-horse")

	res := testutil.DoJSON(t, app, "POST", "/api/auth/login", map[string]any{
		"email": "DONOR@example.org", "password": "correct-horse",
	}, "")
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	token, _ := res.Data()["access_token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "Bearer", res.Data()["token_type"])

	me := testutil.DoJSON(t, app, "GET", "/api/auth/me", nil, token)
	require.Equal(t, fiber.StatusOK, me.Status)
	assert.Equal(t, u.ID.String(), me.Data()["id"])

	var reloaded authModel.UserModel
	require.NoError(t, db.First(&reloaded, "id = ?", u.ID).Error)
	assert.NotNil(t, reloaded.LastLoginAt)
}

func TestLoginInactiveReturns403(t *testing.T) {
	app, db, _ := setup(t)
	u := testutil.CreateUser(t, db, constants.RoleUser, "off@example.org", "correct-horse")
	require.NoError(t, db.Model(&u).Update("is_active", false).Error)

	res := testutil.DoJSON(t, app, "POST", "/api/auth/login", map[string]any{
		"email": "off@example.org", "password": "correct-horse",
	}, "")
	assert.Equal(t, fiber.StatusForbidden, res.Status)
}

func TestMeRequiresToken(t *testing.T) {
	app, _, _ := setup(t)
	res := testutil.DoJSON(t, app, "GET", "/api/auth/me", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
}

func TestLogoutRevokesToken(t *testing.T) {
	app, db, _ := setup(t)
	u := testutil.CreateUser(t, db, constants.RoleUser, "bye@example.org", "correct-horse")
	token := testutil.TokenFor(t, u)

	require.Equal(t, fiber.StatusOK, testutil.DoJSON(t, app, "GET", "/api/auth/me", nil, token).Status)
	require.Equal(t, fiber.StatusOK, testutil.DoJSON(t, app, "POST", "/api/auth/logout", nil, token).Status)

	var n int64
	db.Model(&authModel.TokenBlacklist{}).Count(&n)
	assert.EqualValues(t, 1, n)

	res := testutil.DoJSON(t, app, "GET", "/api/auth/me", nil, token)
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
}

func TestChangePassword(t *testing.T) {
	app, db, _ := setup(t)
	u := testutil.CreateUser(t, db, constants.RoleUser, "pw@example.org", "old-password")
	token := testutil.TokenFor(t, u)

	bad := testutil.DoJSON(t, app, "POST", "/api/auth/change-password", map[string]any{
		"old_password": "nope", "new_password": "new-password",
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, bad.Status)

	ok := testutil.DoJSON(t, app, "POST", "/api/auth/change-password", map[string]any{
		"old_password": "old-password", "new_password": "new-password",
	}, token)
	require.Equal(t, fiber.StatusOK, ok.Status)

	var reloaded authModel.UserModel
	require.NoError(t, db.First(&reloaded, "id = ?", u.ID).Error)
	assert.True(t, service.CheckPassword(reloaded.PasswordHash, "new-password"))
}

func TestLoginGoogleCreatesAndLinks(t *testing.T) {
	db := testutil.NewDB(t)
	prev := configs.GoogleClientID
	configs.GoogleClientID = "client-id"
	t.Cleanup(func() { configs.GoogleClientID = prev })

	svc := service.NewAuthService(db, mailer.NewConsoleMailer(mail.Address{}))
	svc.VerifyGoogle = func(idToken, clientID string) (service.GoogleIdentity, error) {
		if clientID != "client-id" {
			return service.GoogleIdentity{}, errors.New("bad audience")
		}
		switch idToken {
		case "good":
			return service.GoogleIdentity{Email: "g@example.org", Name: "G User", Sub: "google-sub-1"}, nil
		case "squatted":
			return service.GoogleIdentity{Email: "owner@example.org", Name: "Owner", Sub: "google-sub-2"}, nil
		case "verified":
			return service.GoogleIdentity{Email: "kept@example.org", Name: "Kept", Sub: "google-sub-3"}, nil
		}
		return service.GoogleIdentity{}, errors.New("bad token")
	}
	app := testutil.NewApp()
	app.Post("/google", svc.LoginGoogle)
	app.Post("/login", svc.Login)

	bad := testutil.DoJSON(t, app, "POST", "/google", map[string]any{"id_token": "bad"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, bad.Status)

	first := testutil.DoJSON(t, app, "POST", "/google", map[string]any{"id_token": "good"}, "")
	require.Equal(t, fiber.StatusOK, first.Status, string(first.Raw))
	second := testutil.DoJSON(t, app, "POST", "/google", map[string]any{"id_token": "good"}, "")
	require.Equal(t, fiber.StatusOK, second.Status)

	var users []authModel.UserModel
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	require.NotNil(t, users[0].GoogleID)
	assert.Equal(t, "google-sub-1", *users[0].GoogleID)
	assert.True(t, users[0].EmailVerified)

	// an unverified signup under someone else's address loses its password
	squatter := testutil.CreateUser(t, db, constants.RoleUser, "owner@example.org", "squatter-pw")
	require.NoError(t, db.Model(&squatter).Update("email_verified", false).Error)
	linked := testutil.DoJSON(t, app, "POST", "/google", map[string]any{"id_token": "squatted"}, "")
	require.Equal(t, fiber.StatusOK, linked.Status, string(linked.Raw))
	login := testutil.DoJSON(t, app, "POST", "/login", map[string]any{"email": "owner@example.org", "password": "squatter-pw"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, login.Status)

	// a verified account keeps its password after linking
	testutil.CreateUser(t, db, constants.RoleUser, "kept@example.org", "kept-pw-123")
	linked = testutil.DoJSON(t, app, "POST", "/google", map[string]any{"id_token": "verified"}, "")
	require.Equal(t, fiber.StatusOK, linked.Status, string(linked.Raw))
	login = testutil.DoJSON(t, app, "POST", "/login", map[string]any{"email": "kept@example.org", "password": "kept-pw-123"}, "")
	assert.Equal(t, fiber.StatusOK, login.Status)
}

func TestAdminUsersRequireAdminRole(t *testing.T) {
	app, db, _ := setup(t)
	donor := testutil.CreateUser(t, db, constants.RoleUser, "donor@example.org", "password1")

	res := testutil.DoJSON(t, app, "GET", "/api/admin/users", nil, testutil.TokenFor(t, donor))
	assert.Equal(t, fiber.StatusForbidden, res.Status)
}

func TestAdminUserManagement(t *testing.T) {
	app, db, _ := setup(t)
	admin := testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password1")
	token := testutil.TokenFor(t, admin)

	created := testutil.DoJSON(t, app, "POST", "/api/admin/users", map[string]any{
		"full_name": "Staff", "email": "staff@example.org", "password": "password1", "role": "admin",
	}, token)
	require.Equal(t, fiber.StatusCreated, created.Status, string(created.Raw))
	staffID, _ := created.Data()["id"].(string)

	super := testutil.DoJSON(t, app, "POST", "/api/admin/users", map[string]any{
		"full_name": "Boss", "email": "boss@example.org", "password": "password1", "role": "superadmin",
	}, token)
	assert.Equal(t, fiber.StatusForbidden, super.Status)

	list := testutil.DoJSON(t, app, "GET", "/api/admin/users?role=admin", nil, token)
	require.Equal(t, fiber.StatusOK, list.Status)
	assert.Len(t, list.List(), 2)

	patched := testutil.DoJSON(t, app, "PATCH", "/api/admin/users/"+staffID, map[string]any{"is_active": false}, token)
	require.Equal(t, fiber.StatusOK, patched.Status)
	assert.Equal(t, false, patched.Data()["is_active"])

	self := testutil.DoJSON(t, app, "DELETE", "/api/admin/users/"+admin.ID.String(), nil, token)
	assert.Equal(t, fiber.StatusBadRequest, self.Status)

	del := testutil.DoJSON(t, app, "DELETE", "/api/admin/users/"+staffID, nil, token)
	assert.Equal(t, fiber.StatusOK, del.Status)
}
