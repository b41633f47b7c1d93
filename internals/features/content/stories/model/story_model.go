package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoryModel struct {
	StoryID          uuid.UUID  `gorm:"column:story_id;type:uuid;primaryKey" json:"story_id"`
	StoryTitle       string     `gorm:"column:story_title;type:varchar(200);not null" json:"story_title"`
	StorySlug        string     `gorm:"column:story_slug;type:varchar(220);not null;uniqueIndex" json:"story_slug"`
	StorySummary     string     `gorm:"column:story_summary;type:text" json:"story_summary"`
	StoryContent     string     `gorm:"column:story_content;type:text" json:"story_content"`
	StoryImageURL    string     `gorm:"column:story_image_url;type:text" json:"story_image_url"`
	StoryVideoURL    string     `gorm:"column:story_video_url;type:text" json:"story_video_url"`
	StoryIsPublished bool       `gorm:"column:story_is_published;not null;index" json:"story_is_published"`
	StoryIsFeatured  bool       `gorm:"column:story_is_featured;not null" json:"story_is_featured"`
	StoryPublishedAt *time.Time `gorm:"column:story_published_at;index" json:"story_published_at,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StoryModel) TableName() string {
	return "stories"
}

func (m *StoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.StoryID == uuid.Nil {
		m.StoryID = uuid.New()
	}
	return nil
}
