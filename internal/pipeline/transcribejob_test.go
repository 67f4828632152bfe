package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vodworks/audio-service/pkg/models"
)

func TestTranscribeAudio_RejectsNonGUIDKey(t *testing.T) {
	store := &fakeStore{}
	jobs := &fakeJobs{}
	svc := newTestService(t, &fakeTool{}, store, jobs)

	resp := svc.TranscribeAudio(context.Background(), models.TranscribeAudioRequest{
		AudioKey:   "VOD/FinishedVideos/not-a-guid.mp3",
		BucketName: "media-bucket",
	})

	if resp.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(resp.Error, "GUID") {
		t.Errorf("error should mention GUID: %q", resp.Error)
	}
	if store.objectCalls != 0 || jobs.calls != 0 {
		t.Error("no external calls may happen on validation failure")
	}
}

func TestTranscribeAudio_MissingObject(t *testing.T) {
	store := &fakeStore{objectErr: errors.New("object media-bucket/VOD/FinishedVideos/" + testGUID + ".mp3 is not accessible: 404")}
	jobs := &fakeJobs{}
	svc := newTestService(t, &fakeTool{}, store, jobs)

	resp := svc.TranscribeAudio(context.Background(), models.TranscribeAudioRequest{
		AudioKey:   "VOD/FinishedVideos/" + testGUID + ".mp3",
		BucketName: "media-bucket",
	})

	if resp.Success {
		t.Fatal("expected failure")
	}
	if jobs.calls != 0 {
		t.Error("no job may be submitted when the audio object is missing")
	}
}

func TestTranscribeAudio_HappyPath(t *testing.T) {
	store := &fakeStore{}
	jobs := &fakeJobs{}
	svc := newTestService(t, &fakeTool{}, store, jobs)

	resp := svc.TranscribeAudio(context.Background(), models.TranscribeAudioRequest{
		AudioKey:   "VOD/FinishedVideos/" + testGUID + ".mp3",
		BucketName: "media-bucket",
	})

	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if want := "transcription_" + testGUID; resp.TranscriptionJobName != want {
		t.Errorf("job name = %q, want %q", resp.TranscriptionJobName, want)
	}

	if jobs.calls != 1 {
		t.Fatalf("expected one job submission, got %d", jobs.calls)
	}
	if want := "s3://media-bucket/VOD/FinishedVideos/" + testGUID + ".mp3"; jobs.last.MediaURI != want {
		t.Errorf("media URI = %q, want %q", jobs.last.MediaURI, want)
	}
	if want := "VOD/Subtitles/" + testGUID + ".json"; jobs.last.OutputKey != want {
		t.Errorf("output key = %q, want %q", jobs.last.OutputKey, want)
	}
	if jobs.last.OutputBucket != "media-bucket" {
		t.Errorf("output bucket = %q", jobs.last.OutputBucket)
	}
	if jobs.last.LanguageCode != "en-US" {
		t.Errorf("expected default language en-US, got %q", jobs.last.LanguageCode)
	}
	if jobs.last.MediaFormat != "mp3" {
		t.Errorf("expected media format mp3, got %q", jobs.last.MediaFormat)
	}
}

func TestTranscribeAudio_CustomLanguageCode(t *testing.T) {
	jobs := &fakeJobs{}
	svc := newTestService(t, &fakeTool{}, &fakeStore{}, jobs)

	resp := svc.TranscribeAudio(context.Background(), models.TranscribeAudioRequest{
		AudioKey:     "VOD/FinishedVideos/" + testGUID + ".mp3",
		BucketName:   "media-bucket",
		LanguageCode: "de-DE",
	})

	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if jobs.last.LanguageCode != "de-DE" {
		t.Errorf("language code = %q, want de-DE", jobs.last.LanguageCode)
	}
}

func TestTranscribeAudio_ServiceFailure(t *testing.T) {
	// A duplicate job name collides at the managed service; it surfaces as
	// an ordinary service error.
	jobs := &fakeJobs{err: errors.New("failed to start transcription job: ConflictException")}
	svc := newTestService(t, &fakeTool{}, &fakeStore{}, jobs)

	resp := svc.TranscribeAudio(context.Background(), models.TranscribeAudioRequest{
		AudioKey:   "VOD/FinishedVideos/" + testGUID + ".mp3",
		BucketName: "media-bucket",
	})

	if resp.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(resp.Error, "external service error") {
		t.Errorf("expected service-error prefix, got %q", resp.Error)
	}
}
