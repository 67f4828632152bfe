package pipeline

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/vodworks/audio-service/internal/media"
	"github.com/vodworks/audio-service/internal/transcribe"
	"github.com/vodworks/audio-service/pkg/models"
)

const testGUID = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

// fakeTool stands in for the ffmpeg/ffprobe pair.
type fakeTool struct {
	probeResult  *media.ProbeResult
	probeErr     error
	extractErr   error
	probeCalls   int
	extractCalls int
	lastOutPath  string
}

func (f *fakeTool) Probe(ctx context.Context, url string) (*media.ProbeResult, error) {
	f.probeCalls++
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return f.probeResult, nil
}

func (f *fakeTool) ExtractAudio(ctx context.Context, url, outPath string) error {
	f.extractCalls++
	f.lastOutPath = outPath
	// Like ffmpeg, the fake leaves output behind even when it then fails.
	if err := os.WriteFile(outPath, []byte("mp3 bytes"), 0o644); err != nil {
		return err
	}
	return f.extractErr
}

// fakeStore stands in for the object-storage client.
type fakeStore struct {
	bucketErr error
	objectErr error
	uploadErr error

	bucketCalls int
	objectCalls int
	uploadCalls int

	uploadedBucket string
	uploadedKey    string
	uploadedPath   string
	sawUploadFile  bool
}

func (f *fakeStore) BucketExists(ctx context.Context, bucket string) error {
	f.bucketCalls++
	return f.bucketErr
}

func (f *fakeStore) ObjectExists(ctx context.Context, bucket, key string) error {
	f.objectCalls++
	return f.objectErr
}

func (f *fakeStore) UploadFile(ctx context.Context, bucket, key, filePath string) error {
	f.uploadCalls++
	f.uploadedBucket = bucket
	f.uploadedKey = key
	f.uploadedPath = filePath
	if _, err := os.Stat(filePath); err == nil {
		f.sawUploadFile = true
	}
	return f.uploadErr
}

// fakeJobs stands in for the managed transcription client.
type fakeJobs struct {
	calls int
	last  transcribe.JobRequest
	err   error
}

func (f *fakeJobs) StartJob(ctx context.Context, req transcribe.JobRequest) error {
	f.calls++
	f.last = req
	return f.err
}

// fakeProbeCache is an in-memory ProbeCache.
type fakeProbeCache struct {
	entries map[string]models.ProbeResponse
	sets    int
}

func (f *fakeProbeCache) GetProbeResult(ctx context.Context, url string) (*models.ProbeResponse, error) {
	if resp, ok := f.entries[url]; ok {
		return &resp, nil
	}
	return nil, nil
}

func (f *fakeProbeCache) SetProbeResult(ctx context.Context, url string, resp models.ProbeResponse, ttl time.Duration) error {
	if f.entries == nil {
		f.entries = make(map[string]models.ProbeResponse)
	}
	f.entries[url] = resp
	f.sets++
	return nil
}

func newTestService(t *testing.T, tool *fakeTool, store *fakeStore, jobs *fakeJobs) *Service {
	t.Helper()
	return New(Config{TempDir: t.TempDir(), ProbeTTL: time.Minute}, tool, store, jobs, nil, nil)
}
