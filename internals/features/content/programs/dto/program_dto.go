package dto

import (
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/content/programs/model"
)

type CreateProgramCategoryRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug" form:"slug" validate:"omitempty,max=120"`
	Description string `json:"description" form:"description" validate:"max=2000"`
	SortOrder   int    `json:"sort_order" form:"sort_order"`
}

type UpdateProgramCategoryRequest struct {
	Name        *string `json:"name" form:"name" validate:"omitempty,min=2,max=100"`
	Slug        *string `json:"slug" form:"slug" validate:"omitempty,max=120"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=2000"`
	SortOrder   *int    `json:"sort_order" form:"sort_order"`
}

type ProgramCategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
}

func ToProgramCategoryResponse(m model.ProgramCategoryModel) ProgramCategoryResponse {
	return ProgramCategoryResponse{
		ID:          m.ID,
		Name:        m.ProgramCategoryName,
		Slug:        m.ProgramCategorySlug,
		Description: m.ProgramCategoryDescription,
		SortOrder:   m.ProgramCategorySortOrder,
	}
}

func ToProgramCategoryResponses(rows []model.ProgramCategoryModel) []ProgramCategoryResponse {
	out := make([]ProgramCategoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToProgramCategoryResponse(r))
	}
	return out
}

// Raised amounts are not accepted here; they follow completed donations.
type CreateProgramRequest struct {
	Name        string     `json:"name" form:"name" validate:"required,min=2,max=200"`
	Description string     `json:"description" form:"description"`
	ImageURL    string     `json:"image_url" form:"image_url" validate:"omitempty,url"`
	GoalAmount  float64    `json:"goal_amount" form:"goal_amount" validate:"gte=0"`
	CategoryID  *uuid.UUID `json:"category_id" form:"category_id"`
	IsActive    *bool      `json:"is_active" form:"is_active"`
	IsFeatured  bool       `json:"is_featured" form:"is_featured"`
}

type UpdateProgramRequest struct {
	Name        *string    `json:"name" form:"name" validate:"omitempty,min=2,max=200"`
	Description *string    `json:"description" form:"description"`
	ImageURL    *string    `json:"image_url" form:"image_url" validate:"omitempty,url"`
	GoalAmount  *float64   `json:"goal_amount" form:"goal_amount" validate:"omitempty,gte=0"`
	CategoryID  *uuid.UUID `json:"category_id" form:"category_id"`
	// ClearCategory detaches the program from its category.
	ClearCategory bool  `json:"clear_category" form:"clear_category"`
	IsActive      *bool `json:"is_active" form:"is_active"`
	IsFeatured    *bool `json:"is_featured" form:"is_featured"`
}

type ProgramResponse struct {
	ID           uuid.UUID                `json:"id"`
	Name         string                   `json:"name"`
	Slug         string                   `json:"slug"`
	Description  string                   `json:"description"`
	ImageURL     string                   `json:"image_url"`
	GoalAmount   float64                  `json:"goal_amount"`
	RaisedAmount float64                  `json:"raised_amount"`
	Progress     float64                  `json:"progress"`
	IsActive     bool                     `json:"is_active"`
	IsFeatured   bool                     `json:"is_featured"`
	CategoryID   *uuid.UUID               `json:"category_id,omitempty"`
	Category     *ProgramCategoryResponse `json:"category,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
}

// Progress returns raised/goal as a percentage capped at 100.
func Progress(raised, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	p := raised / goal * 100
	if p > 100 {
		p = 100
	}
	return float64(int64(p*10+0.5)) / 10
}

func ToProgramResponse(m model.ProgramModel) ProgramResponse {
	out := ProgramResponse{
		ID:           m.ProgramID,
		Name:         m.ProgramName,
		Slug:         m.ProgramSlug,
		Description:  m.ProgramDescription,
		ImageURL:     m.ProgramImageURL,
		GoalAmount:   m.ProgramGoalAmount,
		RaisedAmount: m.ProgramRaisedAmount,
		Progress:     Progress(m.ProgramRaisedAmount, m.ProgramGoalAmount),
		IsActive:     m.ProgramIsActive,
		IsFeatured:   m.ProgramIsFeatured,
		CategoryID:   m.ProgramCategoryID,
		CreatedAt:    m.CreatedAt,
	}
	if m.Category != nil {
		cat := ToProgramCategoryResponse(*m.Category)
		out.Category = &cat
	}
	return out
}

func ToProgramResponses(rows []model.ProgramModel) []ProgramResponse {
	out := make([]ProgramResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToProgramResponse(r))
	}
	return out
}
