package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	appconfig "wedding-site-backend/internal/config"
	"wedding-site-backend/internal/imaging"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageHost stores normalized guest photos on S3 (or any S3-compatible
// host) and hands back a public URL
type ImageHost struct {
	client        *s3.Client
	bucket        string
	region        string
	keyPrefix     string
	publicBaseURL string
}

// NewImageHost creates a new image host backed by the configured bucket
func NewImageHost(ctx context.Context, cfg appconfig.AWSConfig) (*ImageHost, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &ImageHost{
		client:        client,
		bucket:        cfg.S3Bucket,
		region:        cfg.Region,
		keyPrefix:     cfg.KeyPrefix,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload stores the image under a fresh key and returns its public URL
func (h *ImageHost) Upload(ctx context.Context, img *imaging.Image) (string, error) {
	key := fmt.Sprintf("%s/memory-card-%s.jpg", h.keyPrefix, uuid.New().String())

	_, err := h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if h.publicBaseURL != "" {
		return h.publicBaseURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", h.bucket, h.region, key), nil
}
