// Package vod defines the naming conventions that tie a VOD asset's
// artifacts together. Every asset is identified by a GUID embedded in its
// file name; the original video, the extracted audio and the transcription
// output all derive their storage keys from that one GUID.
package vod

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Storage prefixes shared with the downstream VOD tooling. These must not
// change without coordinating a bucket migration.
const (
	FinishedVideosPrefix = "VOD/FinishedVideos/"
	SubtitlesPrefix      = "VOD/Subtitles/"
)

// DefaultLanguageCode is used when a transcription request does not name one.
const DefaultLanguageCode = "en-US"

// ParseGUID validates that s is a 36-character hyphenated GUID and returns
// its canonical lowercase form.
func ParseGUID(s string) (string, error) {
	if len(s) != 36 {
		return "", fmt.Errorf("asset GUID must be the 36-character hyphenated form, got %q", s)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid asset GUID %q: %w", s, err)
	}
	return id.String(), nil
}

// GUIDFromVideoURL derives the asset GUID from the basename of an .mp4
// object URL.
func GUIDFromVideoURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid source URL: %w", err)
	}
	base := path.Base(u.Path)
	if !strings.HasSuffix(strings.ToLower(base), ".mp4") {
		return "", fmt.Errorf("source must be an .mp4 object, got %q", base)
	}
	return ParseGUID(base[:len(base)-len(".mp4")])
}

// GUIDFromAudioKey derives the asset GUID from the basename of an .mp3
// storage key.
func GUIDFromAudioKey(key string) (string, error) {
	base := path.Base(key)
	if !strings.HasSuffix(strings.ToLower(base), ".mp3") {
		return "", fmt.Errorf("audio key must name an .mp3 object, got %q", base)
	}
	return ParseGUID(base[:len(base)-len(".mp3")])
}

// AudioKey returns the storage key of the extracted audio rendition.
func AudioKey(guid string) string {
	return FinishedVideosPrefix + guid + ".mp3"
}

// SubtitleKey returns the storage key the transcription output is written to.
func SubtitleKey(guid string) string {
	return SubtitlesPrefix + guid + ".json"
}

// TranscriptionJobName returns the deterministic job name for an asset, so
// callers can predict it without waiting for a response. Submitting the same
// asset twice collides at the managed service.
func TranscriptionJobName(guid string) string {
	return "transcription_" + guid
}

// BucketFromURL resolves the bucket name from an object URL. Two shapes are
// accepted: virtual-hosted AWS URLs ({bucket}.s3.amazonaws.com, with or
// without a region label) and s3://{bucket}/... URIs.
func BucketFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid source URL: %w", err)
	}

	if u.Scheme == "s3" {
		if u.Host == "" {
			return "", fmt.Errorf("s3 URI %q has no bucket", rawURL)
		}
		return u.Host, nil
	}

	host := strings.ToLower(u.Hostname())
	if strings.HasSuffix(host, ".amazonaws.com") {
		if i := strings.Index(host, ".s3"); i > 0 {
			return u.Hostname()[:i], nil
		}
	}
	return "", fmt.Errorf("cannot resolve a bucket from URL %q", rawURL)
}
