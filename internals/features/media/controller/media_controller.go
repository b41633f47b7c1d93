package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/media/service"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/storage"
)

type MediaController struct {
	Media   *storage.Processor
	Service *service.MediaService
}

func NewMediaController(media *storage.Processor, svc *service.MediaService) *MediaController {
	return &MediaController{Media: media, Service: svc}
}

func (ctrl *MediaController) ready() error {
	if ctrl.Service == nil || ctrl.Service.Store == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "media storage is not configured")
	}
	return nil
}

// POST /admin/media/upload : multipart "file", ?kind=image|video to restrict
func (ctrl *MediaController) Upload(c *fiber.Ctx) error {
	fh := storage.FormFile(c, "file", "image", "video")
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}
	want := constants.MediaUnknown
	switch strings.ToLower(c.Query("kind")) {
	case "":
	case string(constants.MediaImage):
		want = constants.MediaImage
	case string(constants.MediaVideo):
		want = constants.MediaVideo
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "kind must be image or video")
	}
	saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, want)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "file uploaded", saved)
}

// GET /admin/media?prefix=
func (ctrl *MediaController) List(c *fiber.Ctx) error {
	if err := ctrl.ready(); err != nil {
		return err
	}
	objects, err := ctrl.Service.Objects(c.UserContext(), strings.TrimSpace(c.Query("prefix")))
	if err != nil {
		log.Error().Err(err).Msg("list media")
		return helper.JsonError(c, fiber.StatusBadGateway, "failed to list media")
	}
	return helper.JsonOK(c, "ok", objects)
}

// GET /admin/media/usage?ref=
func (ctrl *MediaController) Usage(c *fiber.Ctx) error {
	if err := ctrl.ready(); err != nil {
		return err
	}
	ref := strings.TrimSpace(c.Query("ref"))
	if ref == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "ref is required")
	}
	key, used, err := ctrl.Service.UsageOf(c.UserContext(), ref)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to look up usage")
	}
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "ref is not a media reference")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"key": key, "used_by": used})
}

// DELETE /admin/media?key=&force=true : refused with 409 while rows use it
func (ctrl *MediaController) Delete(c *fiber.Ctx) error {
	if err := ctrl.ready(); err != nil {
		return err
	}
	key := ctrl.Service.Store.KeyFromReference(c.Query("key"))
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "key is required")
	}
	force, _ := helper.QueryBool(c, "force")
	used, err := ctrl.Service.DeleteObject(c.UserContext(), key, force)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "object not found")
	case err != nil:
		log.Error().Err(err).Str("key", key).Msg("delete media")
		return helper.JsonError(c, fiber.StatusBadGateway, "failed to delete object")
	case len(used) > 0:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":    false,
			"message":    "object is still in use",
			"error_code": "CONFLICT",
			"used_by":    used,
		})
	}
	return helper.JsonDeleted(c, "object deleted", fiber.Map{"key": key})
}

// POST /admin/media/cleanup?dry_run=&mode=clear|delete&orphans=
// dry_run defaults to true.
func (ctrl *MediaController) Cleanup(c *fiber.Ctx) error {
	if err := ctrl.ready(); err != nil {
		return err
	}
	opt := service.CleanupOptions{DryRun: true, Mode: strings.ToLower(strings.TrimSpace(c.Query("mode")))}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&opt); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}
	if v, ok := helper.QueryBool(c, "dry_run"); ok {
		opt.DryRun = v
	}
	if v, ok := helper.QueryBool(c, "orphans"); ok {
		opt.Orphans = v
	}
	if opt.Mode != "" && opt.Mode != service.ModeClear && opt.Mode != service.ModeDelete {
		return helper.JsonError(c, fiber.StatusBadRequest, "mode must be clear or delete")
	}
	rep, err := ctrl.Service.Cleanup(c.UserContext(), opt)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "cleanup finished", rep)
}
