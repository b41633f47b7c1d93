package controller

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/features/donations/donations/dto"
	"amanah_backend/internals/features/donations/donations/model"
	"amanah_backend/internals/features/donations/donations/service"
	helper "amanah_backend/internals/helpers"
)

var errDonationNotFound = fiber.NewError(fiber.StatusNotFound, "donation not found")

// GET /admin/donations?status=&gateway=&q=&email=&program_id=&from=&to=
func (ctrl *DonationController) AdminList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.Donation{})

	if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		q = q.Where("donation_status = ?", s)
	}
	if g := strings.ToLower(strings.TrimSpace(c.Query("gateway"))); g != "" {
		q = q.Where("donation_gateway = ?", g)
	}
	if e := strings.ToLower(strings.TrimSpace(c.Query("email"))); e != "" {
		q = q.Where("donation_donor_email = ?", e)
	}
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("(LOWER(donation_donor_name) LIKE ? OR LOWER(donation_donor_email) LIKE ? OR LOWER(donation_order_id) LIKE ?)", like, like, like)
	}
	if raw := strings.TrimSpace(c.Query("program_id")); raw != "" {
		pid, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "program_id is not a valid uuid")
		}
		q = q.Where("donation_program_id = ?", pid)
	}
	from, err := helper.ParseDateQuery(c.Query("from"))
	if err != nil {
		return err
	}
	to, err := helper.ParseDateQuery(c.Query("to"))
	if err != nil {
		return err
	}
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		// date-only "to" is inclusive of the whole day
		end := *to
		if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
			end = end.Add(24 * time.Hour)
		}
		q = q.Where("created_at < ?", end)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count donations")
	}
	var rows []model.Donation
	if err := paging.Apply(q.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch donations")
	}
	out := make([]dto.DonationResponse, 0, len(rows))
	for _, d := range rows {
		out = append(out, dto.ToDonationResponse(d))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

func (ctrl *DonationController) load(tx *gorm.DB, id uuid.UUID) (model.Donation, error) {
	var d model.Donation
	if err := tx.First(&d, "donation_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return d, errDonationNotFound
		}
		return d, err
	}
	return d, nil
}

// GET /admin/donations/:id
func (ctrl *DonationController) AdminGet(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	d, err := ctrl.load(ctrl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		if errors.Is(err, errDonationNotFound) {
			return err
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load donation")
	}
	return helper.JsonOK(c, "ok", dto.ToDonationResponse(d))
}

// PATCH /admin/donations/:id : status and/or notes
func (ctrl *DonationController) AdminUpdate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateDonationRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}

	var d model.Donation
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		if d, err = ctrl.load(tx, id); err != nil {
			return err
		}
		if req.Notes != nil {
			notes := strings.TrimSpace(*req.Notes)
			if err := tx.Model(&d).Update("donation_notes", notes).Error; err != nil {
				return err
			}
			d.DonationNotes = notes
		}
		if req.Status != nil {
			return ctrl.Service.SetStatus(c.UserContext(), tx, &d, *req.Status)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errDonationNotFound) {
			return err
		}
		log.Error().Err(err).Str("donation_id", id.String()).Msg("update donation")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update donation")
	}
	return helper.JsonUpdated(c, "donation updated", dto.ToDonationResponse(d))
}

// DELETE /admin/donations/:id : soft delete, raised totals refreshed
func (ctrl *DonationController) AdminDelete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		d, err := ctrl.load(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&d).Error; err != nil {
			return err
		}
		if d.DonationStatus == model.StatusCompleted {
			return service.RecomputeRaised(tx, d.DonationProgramID, d.DonationUrgentNeedID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errDonationNotFound) {
			return err
		}
		log.Error().Err(err).Str("donation_id", id.String()).Msg("delete donation")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete donation")
	}
	return helper.JsonDeleted(c, "donation deleted", fiber.Map{"id": id})
}

// GET /admin/donations/stats?months=12
func (ctrl *DonationController) Stats(c *fiber.Ctx) error {
	months := c.QueryInt("months", 12)
	if months <= 0 || months > 60 {
		months = 12
	}
	db := ctrl.DB.WithContext(c.UserContext())

	var byStatus []dto.StatusTotal
	if err := db.Model(&model.Donation{}).
		Select("donation_status AS status, COUNT(*) AS count, COALESCE(SUM(donation_amount), 0) AS amount").
		Group("donation_status").
		Order("donation_status").
		Scan(&byStatus).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to aggregate donations")
	}

	out := dto.StatsResponse{ByStatus: byStatus, ByMonth: []dto.MonthTotal{}}
	for _, s := range byStatus {
		if s.Status == model.StatusCompleted {
			out.TotalCompleted = s.Amount
			out.CountCompleted = s.Count
		}
	}

	// Month buckets are built in Go so the query stays dialect-free.
	now := helper.NowUTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	var paid []model.Donation
	if err := db.Select("donation_amount", "donation_paid_at", "created_at").
		Where("donation_status = ? AND COALESCE(donation_paid_at, created_at) >= ?", model.StatusCompleted, since).
		Find(&paid).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to aggregate donations")
	}
	buckets := map[string]*dto.MonthTotal{}
	for _, d := range paid {
		at := d.CreatedAt
		if d.DonationPaidAt != nil {
			at = *d.DonationPaidAt
		}
		key := at.UTC().Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &dto.MonthTotal{Month: key}
			buckets[key] = b
		}
		b.Count++
		b.Amount += d.DonationAmount
	}
	for _, b := range buckets {
		out.ByMonth = append(out.ByMonth, *b)
	}
	sort.Slice(out.ByMonth, func(i, j int) bool { return out.ByMonth[i].Month < out.ByMonth[j].Month })

	return helper.JsonOK(c, "ok", out)
}
