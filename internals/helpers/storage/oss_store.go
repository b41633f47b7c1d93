package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStore implements Store on Aliyun OSS.
type OSSStore struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
	publicBase string
}

type OSSStoreConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	PublicBase string
}

func NewOSSStore(cfg OSSStoreConfig) (*OSSStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 {
			logger().Warn().Str("bucket", cfg.Bucket).Msg("oss: skip location check, access denied")
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		logger().Info().Str("bucket", cfg.Bucket).Str("location", loc).Msg("oss bucket ready")
	}

	return &OSSStore{
		bucket:     bkt,
		endpoint:   cfg.Endpoint,
		bucketName: cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
	}, nil
}

func (s *OSSStore) Put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
		oss.ObjectACL(oss.ACLPublicRead),
	)
}

func (s *OSSStore) Delete(ctx context.Context, key string) error {
	return s.bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.bucket.IsObjectExist(key, oss.WithContext(ctx))
}

func (s *OSSStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	out := make([]ObjectInfo, 0)
	marker := oss.Marker("")
	for {
		lor, err := s.bucket.ListObjects(oss.Prefix(prefix), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("oss list %q: %w", prefix, err)
		}
		for _, obj := range lor.Objects {
			out = append(out, ObjectInfo{
				Key:          obj.Key,
				Size:         obj.Size,
				LastModified: obj.LastModified,
				URL:          s.PublicURL(obj.Key),
			})
		}
		if !lor.IsTruncated {
			return out, nil
		}
		marker = oss.Marker(lor.NextMarker)
	}
}

func (s *OSSStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, end, key)
}

func (s *OSSStore) KeyFromReference(ref string) string {
	end := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return keyFromReference(ref, "", s.publicBase, fmt.Sprintf("https://%s.%s", s.bucketName, end))
}
