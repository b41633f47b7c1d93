package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromReference(t *testing.T) {
	s := NewMemoryStore("http://localhost:9000/media")

	cases := map[string]string{
		"":                                                "",
		"images/a.webp":                                   "images/a.webp",
		"http://localhost:9000/media/images/a.webp":       "images/a.webp",
		"http://localhost:9000/media/videos/b.mp4?x=1":    "videos/b.mp4",
		"https://cdn.example.org/media/images/c%20d.webp": "media/images/c d.webp",
		"photo.jpg":                                       "images/photo.jpg",
		"clip.mp4":                                        "videos/clip.mp4",
		"../../etc/passwd":                                "etc/passwd",
	}
	for in, want := range cases {
		assert.Equal(t, want, s.KeyFromReference(in), in)
	}
}

func TestS3KeyFromReferenceStripsBucket(t *testing.T) {
	s := &S3Store{bucket: "media", endpoint: "http://minio:9000"}
	assert.Equal(t, "images/x.webp", s.KeyFromReference("http://minio:9000/media/images/x.webp"))
	assert.Equal(t, "images/x.webp", s.KeyFromReference("http://other-host/media/images/x.webp"))
	assert.Equal(t, "http://minio:9000/media/images/x.webp", s.PublicURL("images/x.webp"))
}

func TestThumbKeyFor(t *testing.T) {
	assert.Equal(t, "images/thumbs/a.webp", ThumbKeyFor("images/a.webp"))
	assert.Equal(t, "images/thumbs/b.jpg", ThumbKeyFor("videos/b.mp4"))
	assert.Equal(t, "", ThumbKeyFor("images/thumbs/a.webp"))
	assert.Equal(t, "", ThumbKeyFor("docs/a.pdf"))
}

func TestDeleteReferencesRemovesObjectAndThumb(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("http://m")
	require.NoError(t, s.Put(ctx, "images/a.webp", strings.NewReader("x"), 1, "image/webp"))
	require.NoError(t, s.Put(ctx, "images/thumbs/a.webp", strings.NewReader("y"), 1, "image/webp"))
	require.NoError(t, s.Put(ctx, "images/keep.webp", strings.NewReader("z"), 1, "image/webp"))

	DeleteReferences(ctx, s, "http://m/images/a.webp", "", "not-a-known-thing")

	ok, _ := s.Exists(ctx, "images/a.webp")
	assert.False(t, ok)
	ok, _ = s.Exists(ctx, "images/thumbs/a.webp")
	assert.False(t, ok)
	ok, _ = s.Exists(ctx, "images/keep.webp")
	assert.True(t, ok)
}

func TestMemoryStoreListByPrefix(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("")
	for _, k := range []string{"videos/1.mp4", "images/2.webp", "images/1.webp"} {
		require.NoError(t, s.Put(ctx, k, strings.NewReader("x"), 1, ""))
	}
	objs, err := s.List(ctx, "images/")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "images/1.webp", objs[0].Key)
	assert.Equal(t, "http://localhost/media/images/1.webp", objs[0].URL)
}
