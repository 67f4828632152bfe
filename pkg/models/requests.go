package models

// ProbeRequest asks whether the media at a remote URL carries an audio
// stream and how long it runs.
type ProbeRequest struct {
	URL string `json:"url" binding:"required"`
}

// ProbeResponse reports the result of a probe. HasAudio and Duration are
// pointers so that "unknown" stays distinguishable from false/zero in the
// JSON body.
type ProbeResponse struct {
	Success  bool     `json:"success"`
	HasAudio *bool    `json:"has_audio,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// ExtractAudioRequest names the .mp4 object whose audio track should be
// extracted and uploaded.
type ExtractAudioRequest struct {
	URL string `json:"url" binding:"required"`
}

// ExtractAudioResponse carries the storage key of the uploaded .mp3
// rendition. TranscriptionJobName is kept for wire compatibility with older
// clients; this endpoint never starts a job.
type ExtractAudioResponse struct {
	Success              bool   `json:"success"`
	OutputKey            string `json:"output_key,omitempty"`
	TranscriptionJobName string `json:"transcription_job_name,omitempty"`
	Error                string `json:"error,omitempty"`
}

// TranscribeAudioRequest names a previously extracted .mp3 object to submit
// to the managed transcription service.
type TranscribeAudioRequest struct {
	AudioKey     string `json:"audio_key" binding:"required"`
	BucketName   string `json:"bucket_name" binding:"required"`
	LanguageCode string `json:"language_code"`
}

// TranscribeAudioResponse carries the name of the asynchronous job that was
// started. The job's progress is not tracked by this service.
type TranscribeAudioResponse struct {
	Success              bool   `json:"success"`
	TranscriptionJobName string `json:"transcription_job_name,omitempty"`
	Error                string `json:"error,omitempty"`
}
