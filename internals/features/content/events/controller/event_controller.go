package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/events/dto"
	"amanah_backend/internals/features/content/events/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/storage"
)

type EventController struct {
	DB    *gorm.DB
	Media *storage.Processor
}

func NewEventController(db *gorm.DB, media *storage.Processor) *EventController {
	return &EventController{DB: db, Media: media}
}

func parseTime(field, raw string) (*time.Time, error) {
	t, err := helper.ParseDateQuery(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, field+" must be RFC3339 or YYYY-MM-DD")
	}
	if t != nil {
		utc := t.UTC()
		t = &utc
	}
	return t, nil
}

func (ctrl *EventController) uniqueSlug(c *fiber.Ctx, source string, exclude any) (string, error) {
	return helper.EnsureUniqueSlug(c.UserContext(), ctrl.DB, "events", "event_slug", "event_id", helper.Slugify(source, 200), exclude, 220)
}

// ----------------------------------------------------------------------
// Public
// ----------------------------------------------------------------------

// GET /events?when=upcoming|past&q=
func (ctrl *EventController) List(c *fiber.Ctx) error {
	return ctrl.list(c, strings.ToLower(c.Query("when")))
}

func (ctrl *EventController) Upcoming(c *fiber.Ctx) error { return ctrl.list(c, "upcoming") }

func (ctrl *EventController) Past(c *fiber.Ctx) error { return ctrl.list(c, "past") }

func (ctrl *EventController) list(c *fiber.Ctx, when string) error {
	paging := helper.ResolvePaging(c, 12, 100)
	now := helper.NowUTC()
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.EventModel{}).Where("event_is_published = ?", true)

	order := "event_start_at DESC"
	switch when {
	case "upcoming":
		q = q.Where("(event_start_at >= ? OR (event_end_at IS NOT NULL AND event_end_at >= ?))", now, now)
		order = "event_start_at ASC"
	case "past":
		q = q.Where("event_start_at < ? AND (event_end_at IS NULL OR event_end_at < ?)", now, now)
	}
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		q = q.Where("LOWER(event_title) LIKE ?", "%"+kw+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count events")
	}
	var rows []model.EventModel
	if err := paging.Apply(q.Order(order)).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch events")
	}
	return helper.JsonList(c, "ok", dto.ToEventResponses(rows), helper.BuildPagination(total, paging))
}

// GET /events/:slug
func (ctrl *EventController) GetBySlug(c *fiber.Ctx) error {
	var m model.EventModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("event_slug = ? AND event_is_published = ?", strings.ToLower(c.Params("slug")), true).
		Take(&m).Error
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event")
	}
	return helper.JsonOK(c, "ok", dto.ToEventResponse(m))
}

// ----------------------------------------------------------------------
// Admin
// ----------------------------------------------------------------------

// GET /admin/events?published=
func (ctrl *EventController) AdminList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.EventModel{})
	if v, ok := helper.QueryBool(c, "published"); ok {
		q = q.Where("event_is_published = ?", v)
	}
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		q = q.Where("LOWER(event_title) LIKE ?", "%"+kw+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count events")
	}
	var rows []model.EventModel
	if err := paging.Apply(q.Order("event_start_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch events")
	}
	return helper.JsonList(c, "ok", dto.ToEventResponses(rows), helper.BuildPagination(total, paging))
}

func (ctrl *EventController) find(c *fiber.Ctx) (model.EventModel, error) {
	var m model.EventModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "event_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return m, fiber.NewError(fiber.StatusNotFound, "event not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "failed to load event")
	}
	return m, nil
}

func (ctrl *EventController) AdminGet(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToEventResponse(m))
}

// POST /admin/events (JSON or multipart with "image")
func (ctrl *EventController) Create(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	start, err := parseTime("start_at", req.StartAt)
	if err != nil {
		return err
	}
	end, err := parseTime("end_at", req.EndAt)
	if err != nil {
		return err
	}
	if end != nil && end.Before(*start) {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_at must not be before start_at")
	}

	source := req.Slug
	if strings.TrimSpace(source) == "" {
		source = req.Title
	}
	slug, err := ctrl.uniqueSlug(c, source, nil)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to generate slug")
	}

	m := model.EventModel{
		EventTitle:       strings.TrimSpace(req.Title),
		EventSlug:        slug,
		EventDescription: req.Description,
		EventLocation:    strings.TrimSpace(req.Location),
		EventStartAt:     *start,
		EventEndAt:       end,
		EventImageURL:    strings.TrimSpace(req.ImageURL),
		EventIsPublished: req.IsPublished == nil || *req.IsPublished,
	}
	if fh := storage.FormFile(c, "image", "file"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.EventImageURL = saved.URL
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		ctrl.Media.Remove(c.UserContext(), m.EventImageURL)
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "slug already in use")
		}
		log.Error().Err(err).Msg("create event")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create event")
	}
	return helper.JsonCreated(c, "event created", dto.ToEventResponse(m))
}

// PATCH /admin/events/:id
func (ctrl *EventController) Update(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateEventRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}

	if req.Title != nil {
		m.EventTitle = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		slug, err := ctrl.uniqueSlug(c, *req.Slug, m.EventID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to generate slug")
		}
		m.EventSlug = slug
	}
	if req.Description != nil {
		m.EventDescription = *req.Description
	}
	if req.Location != nil {
		m.EventLocation = strings.TrimSpace(*req.Location)
	}
	if req.StartAt != nil {
		start, err := parseTime("start_at", *req.StartAt)
		if err != nil {
			return err
		}
		if start == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "start_at cannot be empty")
		}
		m.EventStartAt = *start
	}
	if req.EndAt != nil {
		end, err := parseTime("end_at", *req.EndAt)
		if err != nil {
			return err
		}
		m.EventEndAt = end
	}
	if m.EventEndAt != nil && m.EventEndAt.Before(m.EventStartAt) {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_at must not be before start_at")
	}
	if req.IsPublished != nil {
		m.EventIsPublished = *req.IsPublished
	}

	previous := m.EventImageURL
	if req.ImageURL != nil {
		m.EventImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if fh := storage.FormFile(c, "image", "file"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.EventImageURL = saved.URL
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		if m.EventImageURL != previous {
			ctrl.Media.Remove(c.UserContext(), m.EventImageURL)
		}
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "slug already in use")
		}
		log.Error().Err(err).Str("event_id", m.EventID.String()).Msg("update event")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update event")
	}
	ctrl.Media.Swap(c.UserContext(), previous, m.EventImageURL)
	return helper.JsonUpdated(c, "event updated", dto.ToEventResponse(m))
}

// DELETE /admin/events/:id : row first, then the image best effort
func (ctrl *EventController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.EventModel{}, "event_id = ?", m.EventID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete event")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "event not found")
	}
	ctrl.Media.Remove(c.UserContext(), m.EventImageURL)
	return helper.JsonDeleted(c, "event deleted", fiber.Map{"id": m.EventID})
}

