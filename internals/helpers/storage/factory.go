package storage

import (
	"context"
	"fmt"

	"amanah_backend/internals/configs"
)

// NewFromConfig builds the Store selected by STORAGE_DRIVER. The S3 driver
// provisions its bucket; a provisioning error is logged, not returned.
func NewFromConfig(ctx context.Context, cfg configs.StorageConfig, corsOrigins []string) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(cfg.PublicURL), nil
	case "oss":
		return NewOSSStore(OSSStoreConfig{
			Endpoint:   cfg.OSSEndpoint,
			AccessKey:  cfg.OSSAccessKey,
			SecretKey:  cfg.OSSSecretKey,
			Bucket:     cfg.OSSBucket,
			PublicBase: cfg.PublicURL,
		})
	case "s3", "minio", "":
		s, err := NewS3Store(ctx, S3StoreConfig{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			PublicURL: cfg.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx, corsOrigins); err != nil {
			logger().Error().Err(err).Str("bucket", cfg.Bucket).Msg("bucket provisioning failed")
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Driver)
	}
}
