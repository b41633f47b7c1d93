package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Saved describes one stored upload.
type Saved struct {
	Kind        constants.MediaKind `json:"kind"`
	Key         string              `json:"key"`
	URL         string              `json:"url"`
	ThumbKey    string              `json:"thumb_key,omitempty"`
	ThumbURL    string              `json:"thumb_url,omitempty"`
	ContentType string              `json:"content_type"`
	Size        int64               `json:"size"`
}

// Guard vets deletions against the rows that may still reference an object.
type Guard interface {
	Removable(ctx context.Context, ref string) (key string, ok bool)
}

// Processor converts uploads (images -> WebP, videos -> MP4) and stores them.
type Processor struct {
	Store         Store
	WebP          WebPOptions
	FFmpeg        FFmpeg
	Timeout       time.Duration
	MaxImageBytes int64
	MaxVideoBytes int64
	// Guard, when set, keeps objects other rows still use.
	Guard         Guard
}

func NewProcessor(store Store, cfg configs.MediaConfig) *Processor {
	return &Processor{
		Store:         store,
		WebP:          DefaultWebPOptions(),
		FFmpeg:        FFmpeg{Path: cfg.FFmpegPath},
		Timeout:       cfg.FFmpegTimeout,
		MaxImageBytes: cfg.MaxImageBytes,
		MaxVideoBytes: cfg.MaxVideoBytes,
	}
}

// SaveUpload stores a multipart file. want restricts the accepted kind;
// MediaUnknown accepts both images and videos.
func (p *Processor) SaveUpload(ctx context.Context, fh *multipart.FileHeader, want constants.MediaKind) (*Saved, error) {
	if p == nil || p.Store == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "media storage is not configured")
	}
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "file not found")
	}
	kind := constants.DetectMediaKind(fh.Filename, fh.Header.Get(fiber.HeaderContentType))
	if kind == constants.MediaUnknown {
		return nil, fiber.NewError(fiber.StatusUnsupportedMediaType, "only image or video files are accepted")
	}
	if want != constants.MediaUnknown && kind != want {
		return nil, fiber.NewError(fiber.StatusUnsupportedMediaType, "expected a "+string(want)+" file")
	}

	limit := p.MaxImageBytes
	if kind == constants.MediaVideo {
		limit = p.MaxVideoBytes
	}
	if limit > 0 && fh.Size > limit {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "file is too large")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "cannot open file")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "cannot read file")
	}

	return p.SaveBytes(ctx, kind, fh.Filename, fh.Header.Get(fiber.HeaderContentType), data)
}

func (p *Processor) SaveBytes(ctx context.Context, kind constants.MediaKind, filename, contentType string, data []byte) (*Saved, error) {
	if p == nil || p.Store == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "media storage is not configured")
	}
	if len(data) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "empty file")
	}
	if kind == constants.MediaVideo {
		return p.saveVideo(ctx, filename, contentType, data)
	}
	return p.saveImage(ctx, data)
}

func (p *Processor) saveImage(ctx context.Context, data []byte) (*Saved, error) {
	full, thumb, err := ConvertImage(data, p.WebP)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	key := constants.ImagePrefix + uuid.NewString() + ".webp"
	out := &Saved{Kind: constants.MediaImage, Key: key, ContentType: "image/webp", Size: int64(len(full))}
	if err := p.put(ctx, key, full, out.ContentType); err != nil {
		return nil, err
	}
	out.URL = p.Store.PublicURL(key)

	tk := ThumbKeyFor(key)
	if err := p.put(ctx, tk, thumb, "image/webp"); err != nil {
		logger().Warn().Err(err).Str("key", tk).Msg("thumbnail upload failed")
	} else {
		out.ThumbKey, out.ThumbURL = tk, p.Store.PublicURL(tk)
	}
	return out, nil
}

func (p *Processor) saveVideo(ctx context.Context, filename, contentType string, data []byte) (*Saved, error) {
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))

	tctx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	mp4, thumb, err := p.FFmpeg.CompressVideo(tctx, data, ext)
	if err != nil {
		// Store the original when ffmpeg is missing or fails.
		if !errors.Is(err, ErrFFmpegUnavailable) {
			logger().Warn().Err(err).Msg("video compression failed, storing original")
		}
		if ext == "" {
			ext = ".mp4"
		}
		if contentType == "" {
			contentType = "video/mp4"
		}
		key := constants.VideoPrefix + id + ext
		if err := p.put(ctx, key, data, contentType); err != nil {
			return nil, err
		}
		return &Saved{Kind: constants.MediaVideo, Key: key, URL: p.Store.PublicURL(key), ContentType: contentType, Size: int64(len(data))}, nil
	}

	key := constants.VideoPrefix + id + ".mp4"
	if err := p.put(ctx, key, mp4, "video/mp4"); err != nil {
		return nil, err
	}
	out := &Saved{Kind: constants.MediaVideo, Key: key, URL: p.Store.PublicURL(key), ContentType: "video/mp4", Size: int64(len(mp4))}
	if len(thumb) > 0 {
		tk := ThumbKeyFor(key)
		if err := p.put(ctx, tk, thumb, "image/jpeg"); err != nil {
			logger().Warn().Err(err).Str("key", tk).Msg("thumbnail upload failed")
		} else {
			out.ThumbKey, out.ThumbURL = tk, p.Store.PublicURL(tk)
		}
	}
	return out, nil
}

func (p *Processor) put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := p.Store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		logger().Error().Err(err).Str("key", key).Msg("media upload failed")
		return fiber.NewError(fiber.StatusBadGateway, "media storage unavailable")
	}
	return nil
}

/* =======================================================================
   Multipart helpers for controllers
======================================================================= */

func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

// FormFile returns the first file present under any of the field names,
// or nil when the request has none.
func FormFile(c *fiber.Ctx, fieldNames ...string) *multipart.FileHeader {
	if !IsMultipart(c) {
		return nil
	}
	for _, fn := range fieldNames {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}

// Replace stores the new upload (if any) and deletes the previous object
// best effort. It returns the reference to keep in the row.
func (p *Processor) Replace(ctx context.Context, fh *multipart.FileHeader, want constants.MediaKind, previous string) (string, *Saved, error) {
	if fh == nil {
		return previous, nil, nil
	}
	saved, err := p.SaveUpload(ctx, fh, want)
	if err != nil {
		return previous, nil, err
	}
	if previous != "" && previous != saved.URL {
		p.Remove(ctx, previous)
	}
	return saved.URL, saved, nil
}

// Remove deletes stored objects behind refs best effort. References outside
// the store are never touched. A nil processor is a no-op.
func (p *Processor) Remove(ctx context.Context, refs ...string) {
	if p == nil || p.Store == nil {
		return
	}
	for _, ref := range refs {
		key := OwnedKey(p.Store, ref)
		if key == "" {
			continue
		}
		if p.Guard != nil {
			var ok bool
			if key, ok = p.Guard.Removable(ctx, ref); !ok {
				logger().Debug().Str("ref", ref).Msg("media still referenced, kept")
				continue
			}
		}
		DeleteReferences(ctx, p.Store, key)
	}
}

// Swap is for rows whose media reference is edited by value: when the new
// reference differs, the old object is removed.
func (p *Processor) Swap(ctx context.Context, previous, next string) string {
	if previous != "" && previous != next {
		p.Remove(ctx, previous)
	}
	return next
}
