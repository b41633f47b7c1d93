package constants

import (
	"path/filepath"
	"strings"
)

type MediaKind string

const (
	MediaImage   MediaKind = "image"
	MediaVideo   MediaKind = "video"
	MediaUnknown MediaKind = ""
)

// Object key prefixes in the bucket.
const (
	ImagePrefix = "images/"
	VideoPrefix = "videos/"
)

func DetectMediaKind(filename, contentType string) MediaKind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return MediaImage
	case strings.HasPrefix(ct, "video/"):
		return MediaVideo
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return MediaImage
	case ".mp4", ".mov", ".webm", ".mkv", ".avi", ".m4v":
		return MediaVideo
	default:
		return MediaUnknown
	}
}

func PrefixFor(kind MediaKind) string {
	if kind == MediaVideo {
		return VideoPrefix
	}
	return ImagePrefix
}
