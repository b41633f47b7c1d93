package controller

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"amanah_backend/internals/features/settings/dto"
	"amanah_backend/internals/features/settings/model"
	"amanah_backend/internals/features/settings/service"
	helper "amanah_backend/internals/helpers"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,99}$`)

type SettingController struct {
	DB *gorm.DB
}

func NewSettingController(db *gorm.DB) *SettingController {
	return &SettingController{DB: db}
}

// GET /settings : {key: value} of public settings
func (ctrl *SettingController) Public(c *fiber.Ctx) error {
	out, err := service.PublicMap(c.UserContext(), ctrl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch settings")
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /admin/settings
func (ctrl *SettingController) List(c *fiber.Ctx) error {
	var rows []model.SettingModel
	if err := ctrl.DB.WithContext(c.UserContext()).Order("setting_key").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch settings")
	}
	out := make([]dto.SettingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToSettingResponse(r))
	}
	return helper.JsonOK(c, "ok", out)
}

func settingKey(c *fiber.Ctx) (string, error) {
	key := strings.ToLower(strings.TrimSpace(c.Params("key")))
	if !keyPattern.MatchString(key) {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid setting key")
	}
	return key, nil
}

// PUT /admin/settings/:key : creates or replaces the value
func (ctrl *SettingController) Upsert(c *fiber.Ctx) error {
	key, err := settingKey(c)
	if err != nil {
		return err
	}
	var req dto.UpsertSettingRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if !json.Valid(req.Value) {
		return helper.JsonError(c, fiber.StatusBadRequest, "value must be valid JSON")
	}

	var m model.SettingModel
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("setting_key = ?", key).Take(&m).Error
		if err != nil && !helper.IsNotFound(err) {
			return err
		}
		created := err != nil
		if created {
			m = model.SettingModel{SettingKey: key}
		}
		m.SettingValue = datatypes.JSON(req.Value)
		if req.Description != nil {
			m.SettingDescription = strings.TrimSpace(*req.Description)
		}
		if req.IsPublic != nil {
			m.SettingIsPublic = *req.IsPublic
		}
		if created {
			return tx.Create(&m).Error
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("upsert setting")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save setting")
	}
	return helper.JsonUpdated(c, "setting saved", dto.ToSettingResponse(m))
}

// DELETE /admin/settings/:key
func (ctrl *SettingController) Delete(c *fiber.Ctx) error {
	key, err := settingKey(c)
	if err != nil {
		return err
	}
	res := ctrl.DB.WithContext(c.UserContext()).Where("setting_key = ?", key).Delete(&model.SettingModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete setting")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "setting not found")
	}
	return helper.JsonDeleted(c, "setting deleted", fiber.Map{"key": key})
}
