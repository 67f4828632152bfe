// Package transcribe submits asynchronous jobs to the managed transcription
// service. Jobs are fire-and-forget: their progress and completion are not
// tracked here.
package transcribe

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"

	"github.com/vodworks/audio-service/internal/config"
	"github.com/vodworks/audio-service/internal/metrics"
)

// JobRequest describes one transcription job submission.
type JobRequest struct {
	Name         string
	MediaURI     string // s3://{bucket}/{key}
	MediaFormat  string // defaults to mp3
	LanguageCode string
	OutputBucket string
	OutputKey    string
}

// Client wraps the managed transcription API
type Client struct {
	api *awstranscribe.Client
}

// New creates a new transcription client
func New(ctx context.Context, cfg config.TranscribeConfig) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load transcribe config: %w", err)
	}

	return &Client{api: awstranscribe.NewFromConfig(awsCfg)}, nil
}

// StartJob starts an asynchronous transcription job and returns as soon as
// the service has accepted it. Submitting a job name that already exists
// fails at the service; the caller sees that as a service error.
func (c *Client) StartJob(ctx context.Context, req JobRequest) error {
	format := req.MediaFormat
	if format == "" {
		format = "mp3"
	}

	input := &awstranscribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(req.Name),
		LanguageCode:         types.LanguageCode(req.LanguageCode),
		MediaFormat:          types.MediaFormat(format),
		Media: &types.Media{
			MediaFileUri: aws.String(req.MediaURI),
		},
		OutputBucketName: aws.String(req.OutputBucket),
		OutputKey:        aws.String(req.OutputKey),
	}

	if _, err := c.api.StartTranscriptionJob(ctx, input); err != nil {
		return fmt.Errorf("failed to start transcription job %q: %w", req.Name, err)
	}

	metrics.TranscriptionJobsStartedTotal.Inc()
	return nil
}
