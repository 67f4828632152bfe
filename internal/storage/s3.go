// Package storage provides the object-storage operations this service
// needs: bucket reachability, object existence and file upload. It is a thin
// wrapper over the AWS S3 client; retry and timeout behavior is whatever the
// SDK defaults to.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vodworks/audio-service/internal/config"
	"github.com/vodworks/audio-service/internal/metrics"
)

// Client provides object storage operations
type Client struct {
	s3 *s3.Client
}

// New creates a new storage client. Static credentials and a custom endpoint
// are only applied when configured, so the SDK default chain keeps working
// in AWS-hosted environments.
func New(ctx context.Context, cfg config.StorageConfig) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     cfg.AccessKeyID,
				SecretAccessKey: cfg.SecretAccessKey,
			},
		}))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Client{s3: client}, nil
}

// BucketExists verifies that the bucket is reachable with the current
// credentials.
func (c *Client) BucketExists(ctx context.Context, bucket string) error {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %q is not reachable: %w", bucket, err)
	}
	return nil
}

// ObjectExists verifies that the object at bucket/key is accessible.
func (c *Client) ObjectExists(ctx context.Context, bucket, key string) error {
	_, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("object %s/%s is not accessible: %w", bucket, key, err)
	}
	return nil
}

// UploadFile uploads a local file to bucket/key, with the content type
// derived from the key's extension.
func (c *Client) UploadFile(ctx context.Context, bucket, key, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentTypeFor(key)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}

	metrics.AudioUploadSizeBytes.Observe(float64(info.Size()))
	return nil
}

// contentTypeFor returns the content type based on the key's extension
func contentTypeFor(key string) string {
	switch filepath.Ext(key) {
	case ".mp3":
		return "audio/mpeg"
	case ".mp4":
		return "video/mp4"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
