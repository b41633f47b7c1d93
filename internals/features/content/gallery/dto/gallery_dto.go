package dto

import (
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/content/gallery/model"
)

// CreateGalleryItemRequest takes either an uploaded "file" or a media_url
// with its media_type.
type CreateGalleryItemRequest struct {
	Title        string `json:"title" form:"title" validate:"required,min=2,max=200"`
	Description  string `json:"description" form:"description" validate:"max=2000"`
	MediaURL     string `json:"media_url" form:"media_url" validate:"omitempty,url"`
	MediaType    string `json:"media_type" form:"media_type" validate:"omitempty,oneof=image video"`
	ThumbnailURL string `json:"thumbnail_url" form:"thumbnail_url" validate:"omitempty,url"`
	SortOrder    int    `json:"sort_order" form:"sort_order"`
	IsPublished  *bool  `json:"is_published" form:"is_published"`
}

type UpdateGalleryItemRequest struct {
	Title        *string `json:"title" form:"title" validate:"omitempty,min=2,max=200"`
	Description  *string `json:"description" form:"description" validate:"omitempty,max=2000"`
	ThumbnailURL *string `json:"thumbnail_url" form:"thumbnail_url" validate:"omitempty,url"`
	SortOrder    *int    `json:"sort_order" form:"sort_order"`
	IsPublished  *bool   `json:"is_published" form:"is_published"`
}

type GalleryItemResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	MediaURL     string    `json:"media_url"`
	MediaType    string    `json:"media_type"`
	ThumbnailURL string    `json:"thumbnail_url"`
	SortOrder    int       `json:"sort_order"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToGalleryItemResponse(m model.GalleryItemModel) GalleryItemResponse {
	return GalleryItemResponse{
		ID:           m.GalleryItemID,
		Title:        m.GalleryItemTitle,
		Description:  m.GalleryItemDescription,
		MediaURL:     m.GalleryItemMediaURL,
		MediaType:    m.GalleryItemMediaType,
		ThumbnailURL: m.GalleryItemThumbnailURL,
		SortOrder:    m.GalleryItemSortOrder,
		IsPublished:  m.GalleryItemIsPublished,
		CreatedAt:    m.CreatedAt,
	}
}

func ToGalleryItemResponses(rows []model.GalleryItemModel) []GalleryItemResponse {
	out := make([]GalleryItemResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToGalleryItemResponse(r))
	}
	return out
}
