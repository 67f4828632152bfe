package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/vodworks/audio-service/internal/tracing"
	"github.com/vodworks/audio-service/internal/transcribe"
	"github.com/vodworks/audio-service/internal/vod"
	"github.com/vodworks/audio-service/pkg/models"
)

// TranscribeAudio starts an asynchronous transcription job for a previously
// extracted .mp3 object and returns its deterministic job name. The job's
// output lands at the asset's subtitle key in the same bucket.
func (s *Service) TranscribeAudio(ctx context.Context, req models.TranscribeAudioRequest) models.TranscribeAudioResponse {
	span, ctx := tracing.StartSpan(ctx, "pipeline.transcribe")
	defer span.Finish()
	start := time.Now()

	resp, err := s.transcribeAudio(ctx, req)
	if err != nil {
		tracing.LogError(span, err)
		return models.TranscribeAudioResponse{Error: s.finish("transcribe", start, err)}
	}

	s.finish("transcribe", start, nil)
	return resp
}

func (s *Service) transcribeAudio(ctx context.Context, req models.TranscribeAudioRequest) (models.TranscribeAudioResponse, error) {
	guid, err := vod.GUIDFromAudioKey(req.AudioKey)
	if err != nil {
		return models.TranscribeAudioResponse{}, errValidation(err)
	}

	if err := s.store.ObjectExists(ctx, req.BucketName, req.AudioKey); err != nil {
		return models.TranscribeAudioResponse{}, errService(err)
	}

	languageCode := req.LanguageCode
	if languageCode == "" {
		languageCode = vod.DefaultLanguageCode
	}

	jobName := vod.TranscriptionJobName(guid)
	job := transcribe.JobRequest{
		Name:         jobName,
		MediaURI:     fmt.Sprintf("s3://%s/%s", req.BucketName, req.AudioKey),
		MediaFormat:  "mp3",
		LanguageCode: languageCode,
		OutputBucket: req.BucketName,
		OutputKey:    vod.SubtitleKey(guid),
	}

	if err := s.jobs.StartJob(ctx, job); err != nil {
		return models.TranscribeAudioResponse{}, errService(err)
	}

	s.log.WithGUID(guid).WithJobName(jobName).Info("transcription job started")
	return models.TranscribeAudioResponse{Success: true, TranscriptionJobName: jobName}, nil
}
