// Package pipeline implements the three request pipelines: probing a remote
// media URL, extracting an audio rendition, and submitting a transcription
// job. Each run is a straight-line sequence over the injected collaborators;
// every fault is caught and mapped to a success:false response.
package pipeline

import (
	"context"
	"time"

	"github.com/vodworks/audio-service/internal/logging"
	"github.com/vodworks/audio-service/internal/media"
	"github.com/vodworks/audio-service/internal/metrics"
	"github.com/vodworks/audio-service/internal/transcribe"
	"github.com/vodworks/audio-service/pkg/models"
)

// MediaTool is the external inspection/transcoding tool pair.
type MediaTool interface {
	Probe(ctx context.Context, url string) (*media.ProbeResult, error)
	ExtractAudio(ctx context.Context, url, outPath string) error
}

// ObjectStore is the object-storage collaborator. Implementations must be
// safe for concurrent use.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucket string) error
	ObjectExists(ctx context.Context, bucket, key string) error
	UploadFile(ctx context.Context, bucket, key, filePath string) error
}

// TranscriptionStarter submits asynchronous transcription jobs.
type TranscriptionStarter interface {
	StartJob(ctx context.Context, req transcribe.JobRequest) error
}

// ProbeCache holds probe responses keyed by source URL.
type ProbeCache interface {
	GetProbeResult(ctx context.Context, url string) (*models.ProbeResponse, error)
	SetProbeResult(ctx context.Context, url string, resp models.ProbeResponse, ttl time.Duration) error
}

// Config holds pipeline settings.
type Config struct {
	// TempDir is where extraction scratch files live.
	TempDir string
	// ProbeTTL bounds how long a cached probe response stays valid.
	ProbeTTL time.Duration
}

// Service runs the pipelines. It holds no mutable state of its own, so one
// instance serves all requests concurrently.
type Service struct {
	cfg   Config
	tool  MediaTool
	store ObjectStore
	jobs  TranscriptionStarter
	cache ProbeCache // nil disables probe caching
	log   *logging.Logger
}

// New creates a pipeline service. cache may be nil; log may be nil, in which
// case logging is discarded.
func New(cfg Config, tool MediaTool, store ObjectStore, jobs TranscriptionStarter, cache ProbeCache, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Service{
		cfg:   cfg,
		tool:  tool,
		store: store,
		jobs:  jobs,
		cache: cache,
		log:   log,
	}
}

// finish records the outcome of one pipeline run in logs and metrics and
// returns the error message for the response body, empty on success.
func (s *Service) finish(pipeline string, start time.Time, err error) string {
	if err == nil {
		s.log.LogPipelineRun(pipeline, "success", time.Since(start), nil)
		metrics.RecordPipelineRun(pipeline, "success")
		return ""
	}

	perr := classify(err)
	s.log.LogPipelineRun(pipeline, perr.Kind.String(), time.Since(start), perr)
	metrics.RecordPipelineRun(pipeline, perr.Kind.String())
	return perr.Error()
}
