package s3

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"inkpost-service/internal/config"
	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/logger"
)

// Storage uploads media objects to an S3 bucket and hands back public URLs.
type Storage struct {
	client    *awss3.Client
	bucket    string
	publicURL string
	log       *logger.Logger
}

func NewStorage(ctx context.Context, cfg config.S3, log *logger.Logger) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.Bucket)
	if cfg.Endpoint != "" {
		publicURL = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	}

	log.Info("S3 storage configured",
		slog.String("bucket", cfg.Bucket),
		slog.String("region", cfg.Region))

	return &Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		log:       log,
	}, nil
}

// Upload stores body under a fresh object key in folder and returns the
// object's public URL. The original filename only contributes its extension.
func (s *Storage) Upload(ctx context.Context, folder, filename, contentType string, body []byte) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), path.Ext(filename))

	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.log.Error("S3 upload error",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return "", custom_errors.ErrUploadFailed
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

// Delete removes the object a previously returned URL points at.
func (s *Storage) Delete(ctx context.Context, fileURL string) error {
	key := strings.TrimPrefix(fileURL, s.publicURL+"/")
	if key == fileURL || key == "" {
		return custom_errors.ErrMediaNotFound
	}

	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.log.Error("S3 delete error",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return custom_errors.ErrExternalServiceError
	}

	return nil
}
