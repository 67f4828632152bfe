// Package media wraps the external ffmpeg/ffprobe binaries. Both tools read
// the source over the network themselves, so no media file is ever
// downloaded by this service; extraction writes only the encoded output to a
// local scratch path.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/vodworks/audio-service/internal/metrics"
)

// FFmpeg invokes ffmpeg and ffprobe as external processes.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
}

// NewFFmpeg creates an FFmpeg instance bound to the given binary paths.
func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

// ExecError reports an external tool process that exited non-zero. The
// captured stderr is part of the message so callers see the tool's own
// diagnostics.
type ExecError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s failed: %v, stderr: %s", e.Tool, e.Err, e.Stderr)
}

func (e *ExecError) Unwrap() error { return e.Err }

// ProbeResult holds the container and per-stream metadata reported by
// ffprobe.
type ProbeResult struct {
	Format  FormatInfo   `json:"format"`
	Streams []StreamInfo `json:"streams"`
}

// FormatInfo holds container-level metadata.
type FormatInfo struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// StreamInfo holds per-stream metadata.
type StreamInfo struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Duration  string `json:"duration"`
}

// HasAudio reports whether at least one stream is an audio stream.
func (r *ProbeResult) HasAudio() bool {
	for _, stream := range r.Streams {
		if stream.CodecType == "audio" {
			return true
		}
	}
	return false
}

// DurationSeconds returns the media duration in seconds. The container
// duration wins; otherwise the first stream carrying a parseable duration is
// used. ok is false when no duration can be determined at all.
func (r *ProbeResult) DurationSeconds() (seconds float64, ok bool) {
	if d, err := strconv.ParseFloat(r.Format.Duration, 64); err == nil {
		return d, true
	}
	for _, stream := range r.Streams {
		if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
			return d, true
		}
	}
	return 0, false
}

// Probe runs ffprobe against a media URL and parses its JSON output. Only
// metadata is read; the full file is not fetched.
func (f *FFmpeg) Probe(ctx context.Context, url string) (*ProbeResult, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		url,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	metrics.ToolRunDuration.WithLabelValues("ffprobe").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &ExecError{Tool: "ffprobe", Stderr: stderr.String(), Err: err}
	}

	var result ProbeResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	return &result, nil
}

// ExtractAudio strips the video stream from the media at url and encodes the
// audio to mp3 at outPath, overwriting any existing file there.
func (f *FFmpeg) ExtractAudio(ctx context.Context, url, outPath string) error {
	args := []string{
		"-i", url,
		"-vn",
		"-c:a", "libmp3lame",
		"-q:a", "2",
		"-f", "mp3",
		"-y",
		outPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	metrics.ToolRunDuration.WithLabelValues("ffmpeg").Observe(time.Since(start).Seconds())
	if err != nil {
		return &ExecError{Tool: "ffmpeg", Stderr: stderr.String(), Err: err}
	}

	return nil
}
