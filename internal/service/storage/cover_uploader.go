package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	appconfig "worldlib/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// CoverUpload is a one-time grant for uploading a cover image: the client
// PUTs the file to UploadURL, then stores PublicURL on the book.
type CoverUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// CoverUploader issues presigned PUT URLs against an S3-compatible object
// store. The catalog itself never proxies file bytes; it only ever stores the
// resulting public URL string.
type CoverUploader struct {
	cfg    *appconfig.Config
	logger *slog.Logger
}

// NewCoverUploader creates a new cover uploader
func NewCoverUploader(cfg *appconfig.Config, logger *slog.Logger) *CoverUploader {
	return &CoverUploader{cfg: cfg, logger: logger}
}

func (u *CoverUploader) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(u.cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.S3AccessKey,
			u.cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if u.cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.S3Endpoint)
		}
	})

	return s3.NewPresignClient(client), nil
}

// coverKey builds a date-partitioned object key; uuid keeps names unguessable.
func coverKey() string {
	d := time.Now()
	return fmt.Sprintf("covers/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// NewUpload issues a presigned PUT URL valid for 15 minutes.
func (u *CoverUploader) NewUpload(ctx context.Context, contentType string) (*CoverUpload, error) {
	presign, err := u.presignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create presign client: %w", err)
	}

	bucket := u.cfg.S3Bucket
	key := coverKey()

	input := &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}

	req, err := presign.PresignPutObject(ctx, input, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("presign cover upload: %w", err)
	}

	u.logger.Debug("cover upload presigned", "key", key)

	return &CoverUpload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: u.publicURL(key),
	}, nil
}

func (u *CoverUploader) publicURL(key string) string {
	base := strings.TrimSuffix(u.cfg.S3PublicBaseURL, "/")
	return base + "/" + key
}
