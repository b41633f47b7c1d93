package dto

import (
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/content/stories/model"
)

// Files: "image" and "video" (multipart).
type CreateStoryRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=3,max=200"`
	Slug        string `json:"slug" form:"slug" validate:"omitempty,max=220"`
	Summary     string `json:"summary" form:"summary" validate:"max=1000"`
	Content     string `json:"content" form:"content"`
	ImageURL    string `json:"image_url" form:"image_url" validate:"omitempty,url"`
	VideoURL    string `json:"video_url" form:"video_url" validate:"omitempty,url"`
	IsPublished *bool  `json:"is_published" form:"is_published"`
	IsFeatured  bool   `json:"is_featured" form:"is_featured"`
}

type UpdateStoryRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=3,max=200"`
	Slug        *string `json:"slug" form:"slug" validate:"omitempty,max=220"`
	Summary     *string `json:"summary" form:"summary" validate:"omitempty,max=1000"`
	Content     *string `json:"content" form:"content"`
	ImageURL    *string `json:"image_url" form:"image_url" validate:"omitempty,url"`
	VideoURL    *string `json:"video_url" form:"video_url" validate:"omitempty,url"`
	IsPublished *bool   `json:"is_published" form:"is_published"`
	IsFeatured  *bool   `json:"is_featured" form:"is_featured"`
}

type StoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content,omitempty"`
	ImageURL    string     `json:"image_url"`
	VideoURL    string     `json:"video_url,omitempty"`
	IsPublished bool       `json:"is_published"`
	IsFeatured  bool       `json:"is_featured"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToStoryResponse(m model.StoryModel) StoryResponse {
	return StoryResponse{
		ID:          m.StoryID,
		Title:       m.StoryTitle,
		Slug:        m.StorySlug,
		Summary:     m.StorySummary,
		Content:     m.StoryContent,
		ImageURL:    m.StoryImageURL,
		VideoURL:    m.StoryVideoURL,
		IsPublished: m.StoryIsPublished,
		IsFeatured:  m.StoryIsFeatured,
		PublishedAt: m.StoryPublishedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToStorySummaries drops the body for list views.
func ToStorySummaries(rows []model.StoryModel) []StoryResponse {
	out := make([]StoryResponse, 0, len(rows))
	for _, r := range rows {
		s := ToStoryResponse(r)
		s.Content = ""
		out = append(out, s)
	}
	return out
}
