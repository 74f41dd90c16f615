// Package upload stores listing images in S3-compatible object storage.
// Callers fall back to a local ephemeral preview reference when an upload
// fails, so the wizard keeps working without the storage backend.
package upload

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// LocalPreviewScheme prefixes ephemeral references handed out when the
// object store is unreachable. They resolve only inside the uploader's
// browser session.
const LocalPreviewScheme = "local-preview://"

// Config carries the object-storage settings.
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string // optional, for MinIO-style deployments
	AccessKey string
	SecretKey string
	PublicURL string // base URL for serving uploaded objects
}

// UploadResult identifies one stored file.
type UploadResult struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	LocalPreview bool   `json:"is_local_preview"`
}

// Uploader stores files.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (*UploadResult, error)
}

// S3Uploader stores files in an S3 bucket.
type S3Uploader struct {
	cfg    Config
	client *s3.Client
}

// NewS3Uploader builds an uploader from static credentials, with an optional
// endpoint override for MinIO-compatible stores.
func NewS3Uploader(ctx context.Context, cfg Config) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{cfg: cfg, client: client}, nil
}

// Upload puts the file under a date-partitioned key and returns its public
// URL.
func (u *S3Uploader) Upload(ctx context.Context, name, contentType string, body io.Reader) (*UploadResult, error) {
	id := uuid.New().String()
	key := storageKey(id, name)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 put: %w", err)
	}

	base := strings.TrimSuffix(u.cfg.PublicURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", u.cfg.Bucket, u.cfg.Region)
	}

	return &UploadResult{
		ID:  id,
		URL: base + "/" + key,
	}, nil
}

// LocalPreview builds the ephemeral fallback reference for a failed upload.
func LocalPreview(name string) *UploadResult {
	id := uuid.New().String()
	return &UploadResult{
		ID:           id,
		URL:          LocalPreviewScheme + id + "/" + sanitizeName(name),
		LocalPreview: true,
	}
}

func storageKey(id, name string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%s-%s", d.Year(), d.Month(), d.Day(), id, sanitizeName(name))
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
