// Package service assembles the public landing page and the admin dashboard
// from the content, engagement and donation tables.
package service

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	eventDTO "amanah_backend/internals/features/content/events/dto"
	eventModel "amanah_backend/internals/features/content/events/model"
	programDTO "amanah_backend/internals/features/content/programs/dto"
	programModel "amanah_backend/internals/features/content/programs/model"
	slideDTO "amanah_backend/internals/features/content/slideshow/dto"
	slideModel "amanah_backend/internals/features/content/slideshow/model"
	storyDTO "amanah_backend/internals/features/content/stories/dto"
	storyModel "amanah_backend/internals/features/content/stories/model"
	testimonialDTO "amanah_backend/internals/features/content/testimonials/dto"
	testimonialModel "amanah_backend/internals/features/content/testimonials/model"
	urgentDTO "amanah_backend/internals/features/content/urgent_needs/dto"
	urgentModel "amanah_backend/internals/features/content/urgent_needs/model"
	settingService "amanah_backend/internals/features/settings/service"
	helper "amanah_backend/internals/helpers"
)

// Limits caps each home section.
type Limits struct {
	Stories      int
	Events       int
	Testimonials int
	UrgentNeeds  int
	Programs     int
}

var DefaultLimits = Limits{Stories: 3, Events: 3, Testimonials: 6, UrgentNeeds: 4, Programs: 6}

type Home struct {
	Slides       []slideDTO.SlideResponse             `json:"slides"`
	Stories      []storyDTO.StoryResponse             `json:"featured_stories"`
	Events       []eventDTO.EventResponse             `json:"upcoming_events"`
	Testimonials []testimonialDTO.TestimonialResponse `json:"testimonials"`
	UrgentNeeds  []urgentDTO.UrgentNeedResponse       `json:"urgent_needs"`
	Programs     []programDTO.ProgramResponse         `json:"programs"`
	Settings     map[string]json.RawMessage           `json:"settings"`
}

func BuildHome(ctx context.Context, db *gorm.DB, lim Limits) (*Home, error) {
	db = db.WithContext(ctx)
	now := helper.NowUTC()

	var slides []slideModel.SlideModel
	if err := db.Where("slide_is_active = ?", true).
		Order("slide_sort_order ASC").Order("created_at ASC").
		Find(&slides).Error; err != nil {
		return nil, err
	}

	var stories []storyModel.StoryModel
	if err := db.Where("story_is_published = ? AND story_is_featured = ?", true, true).
		Order("story_published_at DESC").
		Limit(lim.Stories).Find(&stories).Error; err != nil {
		return nil, err
	}

	var events []eventModel.EventModel
	if err := db.Where("event_is_published = ?", true).
		Where("(event_start_at >= ? OR (event_end_at IS NOT NULL AND event_end_at >= ?))", now, now).
		Order("event_start_at ASC").Limit(lim.Events).Find(&events).Error; err != nil {
		return nil, err
	}

	var testimonials []testimonialModel.TestimonialModel
	if err := db.Where("testimonial_is_approved = ?", true).
		Order("created_at DESC").Limit(lim.Testimonials).Find(&testimonials).Error; err != nil {
		return nil, err
	}

	var needs []urgentModel.UrgentNeedModel
	if err := db.Where("urgent_need_is_active = ?", true).
		Where("(urgent_need_deadline IS NULL OR urgent_need_deadline >= ?)", now).
		Order("CASE WHEN urgent_need_deadline IS NULL THEN 1 ELSE 0 END").
		Order("urgent_need_deadline ASC").
		Limit(lim.UrgentNeeds).Find(&needs).Error; err != nil {
		return nil, err
	}

	var programs []programModel.ProgramModel
	if err := db.Preload("Category").Where("program_is_active = ?", true).
		Order("program_is_featured DESC").Order("created_at DESC").
		Limit(lim.Programs).Find(&programs).Error; err != nil {
		return nil, err
	}

	settings, err := settingService.PublicMap(ctx, db)
	if err != nil {
		return nil, err
	}

	return &Home{
		Slides:       slideDTO.ToSlideResponses(slides),
		Stories:      storyDTO.ToStorySummaries(stories),
		Events:       eventDTO.ToEventResponses(events),
		Testimonials: testimonialDTO.ToTestimonialResponses(testimonials),
		UrgentNeeds:  urgentDTO.ToUrgentNeedResponses(needs),
		Programs:     programDTO.ToProgramResponses(programs),
		Settings:     settings,
	}, nil
}
