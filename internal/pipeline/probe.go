package pipeline

import (
	"context"
	"time"

	"github.com/vodworks/audio-service/internal/metrics"
	"github.com/vodworks/audio-service/internal/tracing"
	"github.com/vodworks/audio-service/pkg/models"
)

// ProbeAudio inspects the media at req.URL and reports audio presence and
// duration. The inspection tool streams metadata only; the file itself is
// never downloaded. Duration is omitted, not zeroed, when it cannot be
// determined.
func (s *Service) ProbeAudio(ctx context.Context, req models.ProbeRequest) models.ProbeResponse {
	span, ctx := tracing.StartSpan(ctx, "pipeline.probe")
	defer span.Finish()
	start := time.Now()

	if s.cache != nil {
		cached, err := s.cache.GetProbeResult(ctx, req.URL)
		if err != nil {
			s.log.WithError(err).Warn("probe cache read failed")
		}
		metrics.RecordProbeCacheAccess(cached != nil)
		if cached != nil {
			s.finish("probe", start, nil)
			return *cached
		}
	}

	result, err := s.tool.Probe(ctx, req.URL)
	if err != nil {
		tracing.LogError(span, err)
		return models.ProbeResponse{Error: s.finish("probe", start, err)}
	}

	hasAudio := result.HasAudio()
	resp := models.ProbeResponse{Success: true, HasAudio: &hasAudio}
	if d, ok := result.DurationSeconds(); ok {
		resp.Duration = &d
	}

	if s.cache != nil {
		if err := s.cache.SetProbeResult(ctx, req.URL, resp, s.cfg.ProbeTTL); err != nil {
			s.log.WithError(err).Warn("probe cache write failed")
		}
	}

	s.finish("probe", start, nil)
	return resp
}
