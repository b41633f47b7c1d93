// Package storage keeps uploaded media in an object store (S3/MinIO, Aliyun
// OSS, or memory) under images/ and videos/ prefixes.
package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"amanah_backend/internals/constants"
)

var ErrNotFound = errors.New("object not found")

const ThumbPrefix = constants.ImagePrefix + "thumbs/"

type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	URL          string    `json:"url"`
}

// Store is the object storage used by every feature that holds media.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	PublicURL(key string) string
	// KeyFromReference maps a stored value (public URL, key, or bare
	// filename) back to an object key. Unrecognized input returns "".
	KeyFromReference(ref string) string
}

// keyFromReference strips any known public base, then a leading bucket
// segment. Bare filenames are placed under images/ or videos/ by extension.
func keyFromReference(ref, bucket string, bases ...string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	key := ref
	matched := false
	for _, b := range bases {
		b = strings.TrimRight(strings.TrimSpace(b), "/")
		if b != "" && strings.HasPrefix(ref, b+"/") {
			key = strings.TrimPrefix(ref, b+"/")
			matched = true
			break
		}
	}
	if !matched && strings.Contains(ref, "://") {
		u, err := url.Parse(ref)
		if err != nil {
			return ""
		}
		key = strings.TrimPrefix(u.Path, "/")
		if bucket != "" && strings.HasPrefix(key, bucket+"/") {
			key = strings.TrimPrefix(key, bucket+"/")
		}
	}

	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" || key == "." {
		return ""
	}
	if !strings.Contains(key, "/") {
		kind := constants.DetectMediaKind(key, "")
		key = constants.PrefixFor(kind) + key
	}
	return key
}

// OwnedKey maps ref to an object key when it points into s. Absolute URLs
// on other hosts are not ours and yield "".
func OwnedKey(s Store, ref string) string {
	key := s.KeyFromReference(ref)
	if key == "" {
		return ""
	}
	if strings.Contains(ref, "://") {
		clean := ref
		if i := strings.IndexAny(clean, "?#"); i >= 0 {
			clean = clean[:i]
		}
		if s.PublicURL(key) != clean {
			return ""
		}
	}
	return key
}

// DeleteReferences removes the objects behind refs. Failures are logged
// and never returned.
func DeleteReferences(ctx context.Context, s Store, refs ...string) {
	if s == nil {
		return
	}
	for _, ref := range refs {
		key := s.KeyFromReference(ref)
		if key == "" {
			continue
		}
		for _, k := range []string{key, ThumbKeyFor(key)} {
			if k == "" {
				continue
			}
			if err := s.Delete(ctx, k); err != nil && !errors.Is(err, ErrNotFound) {
				logger().Warn().Err(err).Str("key", k).Msg("media delete failed")
			}
		}
	}
}

// ThumbKeyFor derives the thumbnail key of a stored object:
// images/a.webp -> images/thumbs/a.webp, videos/a.mp4 -> images/thumbs/a.jpg.
func ThumbKeyFor(key string) string {
	if key == "" || strings.HasPrefix(key, ThumbPrefix) {
		return ""
	}
	base := path.Base(key)
	name := strings.TrimSuffix(base, path.Ext(base))
	switch {
	case strings.HasPrefix(key, constants.VideoPrefix):
		return ThumbPrefix + name + ".jpg"
	case strings.HasPrefix(key, constants.ImagePrefix):
		return ThumbPrefix + name + ".webp"
	default:
		return ""
	}
}
