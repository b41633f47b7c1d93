package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bytedance/sonic"
)

// S3Store implements Store on AWS S3 or any S3-compatible server (MinIO).
type S3Store struct {
	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	publicURL string
}

type S3StoreConfig struct {
	Bucket    string
	Region    string
	Endpoint  string // custom endpoint for MinIO / LocalStack
	AccessKey string
	SecretKey string
	PublicURL string // optional base for public links
}

func NewS3Store(ctx context.Context, cfg S3StoreConfig) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // required for MinIO
		}
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// EnsureBucket creates the bucket when missing, then applies a public-read
// policy and a CORS rule for the given origins.
func (s *S3Store) EnsureBucket(ctx context.Context, corsOrigins []string) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		in := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
		if s.region != "" && s.region != "us-east-1" {
			in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(s.region),
			}
		}
		if _, err := s.client.CreateBucket(ctx, in); err != nil {
			var owned *types.BucketAlreadyOwnedByYou
			if !errors.As(err, &owned) {
				return fmt.Errorf("s3 create bucket %s: %w", s.bucket, err)
			}
		}
		logger().Info().Str("bucket", s.bucket).Msg("bucket created")
	}

	policy, err := publicReadPolicy(s.bucket)
	if err != nil {
		return err
	}
	if _, err := s.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(s.bucket),
		Policy: aws.String(policy),
	}); err != nil {
		return fmt.Errorf("s3 put bucket policy: %w", err)
	}

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	if _, err := s.client.PutBucketCors(ctx, &s3.PutBucketCorsInput{
		Bucket: aws.String(s.bucket),
		CORSConfiguration: &types.CORSConfiguration{
			CORSRules: []types.CORSRule{{
				AllowedOrigins: corsOrigins,
				AllowedMethods: []string{"GET", "HEAD", "PUT", "POST"},
				AllowedHeaders: []string{"*"},
				ExposeHeaders:  []string{"ETag"},
				MaxAgeSeconds:  aws.Int32(3000),
			}},
		},
	}); err != nil {
		// MinIO versions without bucket CORS support answer NotImplemented.
		logger().Warn().Err(err).Str("bucket", s.bucket).Msg("s3 put bucket cors failed")
	}
	return nil
}

func publicReadPolicy(bucket string) (string, error) {
	doc := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{{
			"Sid":       "PublicRead",
			"Effect":    "Allow",
			"Principal": map[string]any{"AWS": []string{"*"}},
			"Action":    []string{"s3:GetObject"},
			"Resource":  []string{"arn:aws:s3:::" + bucket + "/*"},
		}},
	}
	b, err := sonic.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode bucket policy: %w", err)
	}
	return string(b), nil
}

func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	in := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         r,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}
	if size >= 0 {
		in.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("s3 put failed for %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete failed for %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	if errors.As(err, &nf) || errors.As(err, &nsk) {
		return false, nil
	}
	return false, fmt.Errorf("s3 head failed for %s: %w", key, err)
}

func (s *S3Store) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	out := make([]ObjectInfo, 0)
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list %q: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			out = append(out, ObjectInfo{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
				URL:          s.PublicURL(key),
			})
		}
	}
	return out, nil
}

func (s *S3Store) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	if s.endpoint != "" {
		return s.endpoint + "/" + s.bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Store) KeyFromReference(ref string) string {
	bases := []string{s.publicURL}
	if s.endpoint != "" {
		bases = append(bases, s.endpoint+"/"+s.bucket)
	}
	return keyFromReference(ref, s.bucket, bases...)
}
