package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/JaimeStill/heritage/pkg/lifecycle"
)

type bucket struct {
	client *s3.Client
	name   string
	logger *slog.Logger
}

// newS3 connects to AWS S3 or, when Endpoint is set, an S3-compatible server
// such as MinIO using path-style addressing.
func newS3(cfg *Config, logger *slog.Logger) *bucket {
	client := s3.NewFromConfig(aws.Config{Region: cfg.Region}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		if cfg.AccessKey != "" {
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		}
	})

	return &bucket{
		client: client,
		name:   cfg.Container,
		logger: logger,
	}
}

func (b *bucket) Start(lc *lifecycle.Coordinator) error {
	b.logger.Info("starting storage system", "bucket", b.name)

	lc.OnStartup(func() error {
		_, err := b.client.HeadBucket(lc.Context(), &s3.HeadBucketInput{
			Bucket: aws.String(b.name),
		})
		if err != nil {
			b.logger.Error("storage bucket unavailable", "error", err)
			return fmt.Errorf("storage bucket %s: %w", b.name, err)
		}

		b.logger.Info("storage bucket ready", "bucket", b.name)
		return nil
	})

	return nil
}

func (b *bucket) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}

	return out.Body, nil
}

func (b *bucket) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s: %w", key, err)
	}

	return true, nil
}
