package vod

import (
	"strings"
	"testing"
)

const testGUID = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

func TestNamingRoundTrip(t *testing.T) {
	// Deriving the audio key from {guid}.mp4 and re-deriving the GUID from
	// that key must yield the original GUID back.
	guids := []string{
		testGUID,
		"00000000-0000-0000-0000-000000000000",
		"ABCDEF01-2345-6789-ABCD-EF0123456789",
	}

	for _, g := range guids {
		guid, err := GUIDFromVideoURL("https://media-bucket.s3.amazonaws.com/raw/" + g + ".mp4")
		if err != nil {
			t.Fatalf("GUIDFromVideoURL(%q): %v", g, err)
		}

		back, err := GUIDFromAudioKey(AudioKey(guid))
		if err != nil {
			t.Fatalf("GUIDFromAudioKey(%q): %v", AudioKey(guid), err)
		}

		if back != strings.ToLower(g) {
			t.Errorf("round trip of %q yielded %q", g, back)
		}
	}
}

func TestParseGUID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: testGUID, want: testGUID},
		{in: strings.ToUpper(testGUID), want: testGUID},
		{in: "not-a-guid", wantErr: true},
		{in: "3fa85f645717-4562-b3fc-2c963f66afa6ab", wantErr: true},
		{in: "3fa85f64-5717-4562-b3fc-2c963f66afaZ", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseGUID(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseGUID(%q) expected error, got %q", tt.in, got)
			} else if !strings.Contains(err.Error(), "GUID") {
				t.Errorf("ParseGUID(%q) error should mention GUID: %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseGUID(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGUID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGUIDFromVideoURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "valid https URL", url: "https://b.s3.amazonaws.com/raw/" + testGUID + ".mp4"},
		{name: "valid s3 URI", url: "s3://b/raw/" + testGUID + ".mp4"},
		{name: "uppercase extension", url: "https://b.s3.amazonaws.com/" + testGUID + ".MP4"},
		{name: "not a guid", url: "https://b.s3.amazonaws.com/not-a-guid.mp4", wantErr: true},
		{name: "wrong extension", url: "https://b.s3.amazonaws.com/" + testGUID + ".mkv", wantErr: true},
		{name: "no basename", url: "https://b.s3.amazonaws.com/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GUIDFromVideoURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GUIDFromVideoURL(%q) = %q, %v; wantErr %v", tt.url, got, err, tt.wantErr)
			}
			if err == nil && got != testGUID {
				t.Errorf("expected %q, got %q", testGUID, got)
			}
		})
	}
}

func TestBucketFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "virtual hosted", url: "https://media-bucket.s3.amazonaws.com/raw/v.mp4", want: "media-bucket"},
		{name: "virtual hosted with region", url: "https://media-bucket.s3.eu-west-1.amazonaws.com/raw/v.mp4", want: "media-bucket"},
		{name: "s3 scheme", url: "s3://media-bucket/raw/v.mp4", want: "media-bucket"},
		{name: "s3 scheme without bucket", url: "s3:///raw/v.mp4", wantErr: true},
		{name: "plain https host", url: "https://cdn.example.com/raw/v.mp4", wantErr: true},
		{name: "bare amazonaws host", url: "https://amazonaws.com/v.mp4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BucketFromURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BucketFromURL(%q) = %q, %v; wantErr %v", tt.url, got, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("BucketFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestKeysAndJobName(t *testing.T) {
	if got := AudioKey(testGUID); got != "VOD/FinishedVideos/"+testGUID+".mp3" {
		t.Errorf("AudioKey = %q", got)
	}
	if got := SubtitleKey(testGUID); got != "VOD/Subtitles/"+testGUID+".json" {
		t.Errorf("SubtitleKey = %q", got)
	}
	if got := TranscriptionJobName(testGUID); got != "transcription_"+testGUID {
		t.Errorf("TranscriptionJobName = %q", got)
	}
}
