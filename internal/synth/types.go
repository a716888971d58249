// Package synth implements the resilient client for the speech-synthesis
// backends: per-server circuit breaking, retry with linear backoff, and
// failover across a backend family's configured servers.
package synth

import (
	"fmt"
)

// Options is the per-call synthesis option bag. Every field is optional and
// defaulted independently.
type Options struct {
	Speed   float64 `json:"speed,omitempty"`
	Tone    string  `json:"tone,omitempty"`
	Emotion string  `json:"emotion,omitempty"`
	Accent  string  `json:"accent,omitempty"`
}

func (o Options) withDefaults() Options {
	if o.Speed == 0 {
		o.Speed = 1.0
	}
	return o
}

// VoiceRef identifies the voice to synthesize with: either a stored backend
// voice ID or an inline reference-audio payload (voice cloning). Exactly one
// should be set; ReferencePath is resolved into ReferenceAudio by the
// client's reference loader before any network attempt.
type VoiceRef struct {
	VoiceID        string
	ReferenceAudio []byte
	ReferencePath  string
}

// Request is one synthesis call.
type Request struct {
	Text    string
	Voice   VoiceRef
	Options Options
}

// Validate rejects requests that no backend could serve.
func (r *Request) Validate() error {
	if r.Text == "" {
		return &ValidationError{Reason: "text is empty"}
	}
	if r.Voice.VoiceID == "" && len(r.Voice.ReferenceAudio) == 0 && r.Voice.ReferencePath == "" {
		return &ValidationError{Reason: "no voice reference"}
	}
	return nil
}

// Result is the synthesized audio. The client does not persist it; storage
// is the caller's concern.
type Result struct {
	Audio      []byte
	SampleRate int
	Format     string
	Duration   float64
}

// BatchItem is one entry of a batch synthesis response. Each item fails or
// succeeds independently.
type BatchItem struct {
	Text   string
	Result *Result
	Err    error
}

// Health is a backend server's health report.
type Health struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
}

// ValidationError marks input the client refuses to send. Never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid synthesis request: %s", e.Reason)
}

// UpstreamError is a well-formed error response from a backend. 5xx-class
// statuses are retried per policy; anything else is surfaced unchanged.
type UpstreamError struct {
	Server     string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned %d: %s", e.Server, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned %d", e.Server, e.StatusCode)
}

// Retryable reports whether the status class is worth retrying.
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode >= 500
}

// ReferenceLoadError means the reference audio for a cloning call could not
// be loaded or transcoded. The problem is the input, not the backend, so it
// is terminal for the call: no retry, no server failover.
type ReferenceLoadError struct {
	Path string
	Err  error
}

func (e *ReferenceLoadError) Error() string {
	return fmt.Sprintf("load reference audio %s: %v", e.Path, e.Err)
}

func (e *ReferenceLoadError) Unwrap() error {
	return e.Err
}

// Wire types for the backend HTTP protocol.

type synthesizeRequest struct {
	Text                string  `json:"text"`
	VoiceID             string  `json:"voice_id,omitempty"`
	ReferenceAudioB64   string  `json:"reference_audio_base64,omitempty"`
	Speed               float64 `json:"speed,omitempty"`
	Tone                string  `json:"tone,omitempty"`
	Emotion             string  `json:"emotion,omitempty"`
	Accent              string  `json:"accent,omitempty"`
}

type synthesizeResponse struct {
	AudioB64   string  `json:"audio_base64"`
	SampleRate int     `json:"sample_rate"`
	Format     string  `json:"format"`
	Duration   float64 `json:"duration,omitempty"`
	Detail     string  `json:"detail,omitempty"`
}

type cloneResponse struct {
	VoiceID string `json:"voice_id"`
	Detail  string `json:"detail,omitempty"`
}

type batchRequest struct {
	Texts   []string `json:"texts"`
	VoiceID string   `json:"voice_id"`
	Speed   float64  `json:"speed,omitempty"`
	Tone    string   `json:"tone,omitempty"`
}

type batchResponse struct {
	Results []struct {
		AudioB64   string  `json:"audio_base64,omitempty"`
		SampleRate int     `json:"sample_rate,omitempty"`
		Format     string  `json:"format,omitempty"`
		Duration   float64 `json:"duration,omitempty"`
		Error      string  `json:"error,omitempty"`
	} `json:"results"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
