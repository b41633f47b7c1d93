package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type GalleryItemModel struct {
	GalleryItemID           uuid.UUID `gorm:"column:gallery_item_id;type:uuid;primaryKey" json:"gallery_item_id"`
	GalleryItemTitle        string    `gorm:"column:gallery_item_title;type:varchar(200);not null" json:"gallery_item_title"`
	GalleryItemDescription  string    `gorm:"column:gallery_item_description;type:text" json:"gallery_item_description"`
	GalleryItemMediaURL     string    `gorm:"column:gallery_item_media_url;type:text;not null" json:"gallery_item_media_url"`
	GalleryItemMediaType    string    `gorm:"column:gallery_item_media_type;type:varchar(10);not null;check:gallery_item_media_type IN ('image','video')" json:"gallery_item_media_type"`
	GalleryItemThumbnailURL string    `gorm:"column:gallery_item_thumbnail_url;type:text" json:"gallery_item_thumbnail_url"`
	GalleryItemSortOrder    int       `gorm:"column:gallery_item_sort_order;not null;default:0;index" json:"gallery_item_sort_order"`
	GalleryItemIsPublished  bool      `gorm:"column:gallery_item_is_published;not null;index" json:"gallery_item_is_published"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (GalleryItemModel) TableName() string {
	return "gallery_items"
}

func (m *GalleryItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.GalleryItemID == uuid.Nil {
		m.GalleryItemID = uuid.New()
	}
	return nil
}
