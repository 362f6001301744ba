// Package whisperx provides a Go client for the TranscriptorWhisperX server
// API: audio upload for transcription, best-effort stop of the active job,
// and export of the last result as txt or srt.
package whisperx

import "fmt"

// Target languages accepted by the server (idioma form field).
const (
	LanguagePT = "pt"  // Português
	LanguageEN = "ing" // Inglês
	LanguageJA = "jp"  // Japonês
)

// Precision tiers accepted by the server (precisao form field). Each tier
// selects a WhisperX model size server-side.
const (
	PrecisionFast    = "rapido"
	PrecisionGood    = "bom"
	PrecisionPerfect = "perfeito"
)

// TranscribeRequest represents the configuration for a transcription upload
type TranscribeRequest struct {
	// FilePath is the local path to the audio file to transcribe
	FilePath string

	// Timestamp requests time-aligned output, which enables SRT export
	Timestamp bool

	// DiarizeSpeakers requests speaker diarization (who said what)
	DiarizeSpeakers bool

	// Language is the target language code (pt, ing, jp)
	// Defaults to pt if not specified
	Language string

	// Precision is the quality tier (rapido, bom, perfeito)
	// Defaults to bom if not specified
	Precision string
}

// TranscribeResponse represents the server response from a transcription upload
type TranscribeResponse struct {
	// Text is the full transcribed (and possibly translated) text
	Text string `json:"text"`

	// JobID identifies the completed job for export requests
	JobID string `json:"job_id"`

	// TimestampEnabled reports whether timestamp data was produced,
	// making the srt export format available
	TimestampEnabled bool `json:"timestamp_enabled"`

	// DetectedLanguage is the language WhisperX detected in the audio
	DetectedLanguage string `json:"detected_language"`

	// Aborted is true when the server honored a stop request and the
	// returned text is partial
	Aborted bool `json:"aborted"`
}

// APIError represents a non-2xx response from the server
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Erro HTTP %d", e.StatusCode)
}
