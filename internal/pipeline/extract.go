package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vodworks/audio-service/internal/tracing"
	"github.com/vodworks/audio-service/internal/vod"
	"github.com/vodworks/audio-service/pkg/models"
)

// ExtractAudio transcodes the .mp4 object at req.URL into an .mp3 rendition
// and uploads it under the asset's canonical audio key.
func (s *Service) ExtractAudio(ctx context.Context, req models.ExtractAudioRequest) models.ExtractAudioResponse {
	span, ctx := tracing.StartSpan(ctx, "pipeline.extract")
	defer span.Finish()
	start := time.Now()

	resp, err := s.extractAudio(ctx, req)
	if err != nil {
		tracing.LogError(span, err)
		return models.ExtractAudioResponse{Error: s.finish("extract", start, err)}
	}

	s.finish("extract", start, nil)
	return resp
}

func (s *Service) extractAudio(ctx context.Context, req models.ExtractAudioRequest) (models.ExtractAudioResponse, error) {
	guid, err := vod.GUIDFromVideoURL(req.URL)
	if err != nil {
		return models.ExtractAudioResponse{}, errValidation(err)
	}

	// The scratch path is a pure function of the GUID, so concurrent
	// requests for the same asset share it and the last writer wins.
	scratch := filepath.Join(s.cfg.TempDir, guid+".mp3")
	if err := os.MkdirAll(s.cfg.TempDir, 0o755); err != nil {
		return models.ExtractAudioResponse{}, classify(err)
	}

	// Scratch removal covers every exit path below, including the failure
	// branches where ffmpeg left a partial file behind. A removal failure
	// is logged and never changes the response.
	defer func() {
		if err := os.Remove(scratch); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.log.WithError(err).WithField("path", scratch).Warn("failed to remove scratch file")
		}
	}()

	if err := s.tool.ExtractAudio(ctx, req.URL, scratch); err != nil {
		return models.ExtractAudioResponse{}, classify(err)
	}

	bucket, err := vod.BucketFromURL(req.URL)
	if err != nil {
		return models.ExtractAudioResponse{}, errValidation(err)
	}

	if err := s.store.BucketExists(ctx, bucket); err != nil {
		return models.ExtractAudioResponse{}, errService(err)
	}

	key := vod.AudioKey(guid)
	if err := s.store.UploadFile(ctx, bucket, key, scratch); err != nil {
		return models.ExtractAudioResponse{}, errService(err)
	}

	s.log.WithGUID(guid).WithField("key", key).Info("audio rendition uploaded")
	return models.ExtractAudioResponse{Success: true, OutputKey: key}, nil
}
