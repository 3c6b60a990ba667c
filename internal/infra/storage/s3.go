package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/RelojeriaCentral/taller-api/internal/config"
)

// ObjectStore archives generated reports and watch photos. It is optional;
// when disabled Upload fails with ErrDisabled and callers degrade.
type ObjectStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
	enabled bool
}

var ErrDisabled = fmt.Errorf("object storage disabled")

func NewObjectStore(cfg *config.Config) *ObjectStore {
	if !cfg.S3Enabled {
		return &ObjectStore{enabled: false}
	}

	opts := s3.Options{
		Region:      cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
	}

	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	if cfg.S3Endpoint != "" {
		// MinIO-style endpoints are path addressed
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
		baseURL = fmt.Sprintf("%s/%s", cfg.S3Endpoint, cfg.S3Bucket)
	}

	return &ObjectStore{
		client:  s3.New(opts),
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
		enabled: true,
	}
}

func (s *ObjectStore) Enabled() bool {
	return s.enabled
}

// Upload stores the payload under key and returns its public URL.
func (s *ObjectStore) Upload(
	ctx context.Context,
	key string,
	contentType string,
	payload []byte,
) (string, error) {

	if !s.enabled {
		return "", ErrDisabled
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}
