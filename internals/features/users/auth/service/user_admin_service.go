package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/users/auth/dto"
	authModel "amanah_backend/internals/features/users/auth/model"
	helper "amanah_backend/internals/helpers"
	helperAuth "amanah_backend/internals/helpers/auth"
)

// ListUsers: GET /admin/users?q=&role=&is_active=&page=&per_page=
func (s *AuthService) ListUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	q := s.DB.WithContext(c.UserContext()).Model(&authModel.UserModel{})

	if kw := strings.TrimSpace(c.Query("q")); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if role := strings.ToLower(strings.TrimSpace(c.Query("role"))); role != "" {
		if !constants.IsValidRole(role) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid role filter")
		}
		q = q.Where("role = ?", role)
	}
	if active, ok := helper.QueryBool(c, "is_active"); ok {
		q = q.Where("is_active = ?", active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count users")
	}
	var rows []authModel.UserModel
	if err := paging.Apply(q.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch users")
	}

	out := make([]dto.UserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, dto.ToUserResponse(u))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

func (s *AuthService) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	// Only a superadmin may mint other superadmins.
	if req.Role == constants.RoleSuperAdmin && helperAuth.GetRole(c) != constants.RoleSuperAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "only superadmin can create superadmin accounts")
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "password hashing failed")
	}
	user := authModel.UserModel{
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:  hash,
		Role:          req.Role,
		IsActive:      true,
		EmailVerified: true,
	}
	if err := s.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create user")
	}
	return helper.JsonCreated(c, "user created", dto.ToUserResponse(user))
}

func (s *AuthService) UpdateUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	self, _ := helperAuth.GetUserID(c)

	var user authModel.UserModel
	if err := s.DB.WithContext(c.UserContext()).First(&user, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil && *req.Role != user.Role {
		if id == self {
			return helper.JsonError(c, fiber.StatusBadRequest, "you cannot change your own role")
		}
		if (*req.Role == constants.RoleSuperAdmin || user.Role == constants.RoleSuperAdmin) &&
			helperAuth.GetRole(c) != constants.RoleSuperAdmin {
			return helper.JsonError(c, fiber.StatusForbidden, "only superadmin can change superadmin roles")
		}
		updates["role"] = *req.Role
	}
	if req.IsActive != nil && *req.IsActive != user.IsActive {
		if id == self && !*req.IsActive {
			return helper.JsonError(c, fiber.StatusBadRequest, "you cannot deactivate your own account")
		}
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "nothing to update", dto.ToUserResponse(user))
	}

	if err := s.DB.WithContext(c.UserContext()).Model(&user).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update user")
	}
	if err := s.DB.WithContext(c.UserContext()).First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to reload user")
	}
	return helper.JsonUpdated(c, "user updated", dto.ToUserResponse(user))
}

func (s *AuthService) DeleteUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if self, _ := helperAuth.GetUserID(c); self == id {
		return helper.JsonError(c, fiber.StatusBadRequest, "you cannot delete your own account")
	}
	var user authModel.UserModel
	if err := s.DB.WithContext(c.UserContext()).First(&user, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}
	if user.Role == constants.RoleSuperAdmin && helperAuth.GetRole(c) != constants.RoleSuperAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "only superadmin can delete superadmin accounts")
	}
	if err := s.DB.WithContext(c.UserContext()).Delete(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete user")
	}
	return helper.JsonDeleted(c, "user deleted", fiber.Map{"id": id})
}
