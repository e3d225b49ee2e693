package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config points at any S3-compatible object store.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// PublicURL prefixes object names in returned URLs. Defaults to the
	// path-style bucket URL.
	PublicURL string
}

// S3 stores uploads as objects in one bucket.
type S3 struct {
	client    *minio.Client
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	public := strings.TrimSuffix(cfg.PublicURL, "/")
	if public == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		public = scheme + "://" + cfg.Endpoint + "/" + cfg.Bucket
	}

	return &S3{client: client, bucket: cfg.Bucket, publicURL: public, now: time.Now}, nil
}

func (s *S3) Name() string { return "s3" }

func (s *S3) Store(ctx context.Context, f File) (string, error) {
	if err := Validate(f); err != nil {
		return "", err
	}

	name := ObjectName(s.now(), f.Ext())
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	if _, err := s.client.PutObject(ctx, s.bucket, name, f.Body, f.Size, minio.PutObjectOptions{ContentType: ct}); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.publicURL + "/" + name, nil
}

// Ping checks the bucket is reachable.
func (s *S3) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}
