// Package pipeline ingests user-contributed voice samples through a fixed
// stage sequence: validate, extract a voice seed, analyze acoustics,
// normalize into the voice taxonomy, persist. The first failing stage
// aborts the run; later stages are never invoked and nothing partial is
// committed.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentwood/voice-engine/internal/audio"
	"github.com/agentwood/voice-engine/internal/observability"
	"github.com/agentwood/voice-engine/internal/store"
)

// StageError tags a pipeline failure with the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Upload is a raw voice contribution as received from the user.
type Upload struct {
	Uploader  string
	Character string
	Filename  string
	Data      []byte
}

// Pipeline runs contribution ingestion. Analysis is behind an interface so
// an external acoustic service can replace the local estimator.
type Pipeline struct {
	maxBytes int64
	minClip  time.Duration
	analyzer Analyzer
	store    store.ContributionStore
	log      zerolog.Logger
}

// Config carries the pipeline's limits and collaborators.
type Config struct {
	MaxUploadBytes int64
	MinClipLength  time.Duration
	Analyzer       Analyzer
	Store          store.ContributionStore
}

func New(cfg Config, log zerolog.Logger) *Pipeline {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.MinClipLength <= 0 {
		cfg.MinClipLength = time.Second
	}
	if cfg.Analyzer == nil {
		cfg.Analyzer = &LocalAnalyzer{}
	}
	return &Pipeline{
		maxBytes: cfg.MaxUploadBytes,
		minClip:  cfg.MinClipLength,
		analyzer: cfg.Analyzer,
		store:    cfg.Store,
		log:      log.With().Str("component", "pipeline").Logger(),
	}
}

// Process takes one upload through every stage. On success the returned
// record is approved and persisted; on failure the record is finalized as
// rejected with the stage's reason, persisted, and the StageError returned.
func (p *Pipeline) Process(ctx context.Context, up Upload) (*store.Contribution, error) {
	now := time.Now().UTC()
	rec := &store.Contribution{
		ID:        uuid.New().String(),
		Uploader:  up.Uploader,
		Character: up.Character,
		Filename:  up.Filename,
		SizeBytes: int64(len(up.Data)),
		Status:    store.StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	log := p.log.With().Str("contribution_id", rec.ID).Logger()

	var clip *audio.Clip
	stages := []struct {
		name string
		run  func(context.Context) error
	}{
		{"validate", func(ctx context.Context) error {
			var err error
			clip, err = p.validate(up)
			return err
		}},
		{"extract_seed", func(ctx context.Context) error {
			rec.Seed = extractSeed(clip)
			return nil
		}},
		{"analyze", func(ctx context.Context) error {
			feats, err := p.analyzer.Analyze(ctx, clip)
			if err != nil {
				return err
			}
			rec.Pitch = feats.Pitch
			rec.Tempo = feats.Tempo
			rec.Valence = feats.Valence
			rec.Arousal = feats.Arousal
			return nil
		}},
		{"normalize", func(ctx context.Context) error {
			tone, energy, formality := normalize(rec.Pitch, rec.Tempo, rec.Valence, rec.Arousal)
			rec.Tone = tone
			rec.Energy = energy
			rec.Formality = formality
			return nil
		}},
		{"persist", func(ctx context.Context) error {
			rec.Status = store.StatusApproved
			rec.UpdatedAt = time.Now().UTC()
			return p.store.Create(ctx, rec)
		}},
	}

	for _, stage := range stages {
		err := stage.run(ctx)
		observability.RecordPipelineStage(stage.name, err)
		if err != nil {
			log.Warn().Str("stage", stage.name).Err(err).Msg("contribution rejected")
			p.reject(ctx, rec, stage.name, err)
			observability.RecordContribution(string(store.StatusRejected))
			return nil, &StageError{Stage: stage.name, Err: err}
		}
	}

	log.Info().Str("tone", rec.Tone).Str("energy", rec.Energy).Msg("contribution approved")
	observability.RecordContribution(string(store.StatusApproved))
	return rec, nil
}

func (p *Pipeline) validate(up Upload) (*audio.Clip, error) {
	if len(up.Data) == 0 {
		return nil, fmt.Errorf("empty upload")
	}
	if int64(len(up.Data)) > p.maxBytes {
		return nil, fmt.Errorf("upload is %d bytes, limit %d", len(up.Data), p.maxBytes)
	}
	format := audio.DetectFormat(up.Data)
	if format != audio.FormatWAV {
		return nil, fmt.Errorf("unsupported format %s", format)
	}
	clip, err := audio.DecodeWAV(up.Data)
	if err != nil {
		return nil, err
	}
	if d := time.Duration(clip.Duration() * float64(time.Second)); d < p.minClip {
		return nil, fmt.Errorf("clip is %v, minimum %v", d.Round(time.Millisecond), p.minClip)
	}
	return clip, nil
}

// reject finalizes and commits the rejected record. A store failure here is
// logged, not surfaced: the stage error is the one the caller needs.
func (p *Pipeline) reject(ctx context.Context, rec *store.Contribution, stage string, cause error) {
	rec.Status = store.StatusRejected
	rec.Reason = fmt.Sprintf("%s: %v", stage, cause)
	rec.UpdatedAt = time.Now().UTC()
	if err := p.store.Create(ctx, rec); err != nil {
		p.log.Error().Str("contribution_id", rec.ID).Err(err).Msg("persist rejected record")
	}
}

// extractSeed fingerprints the sample content. Identical audio always maps
// to the same seed.
func extractSeed(clip *audio.Clip) string {
	h := sha256.New()
	buf := make([]byte, 2)
	for _, s := range clip.Samples {
		buf[0] = byte(s)
		buf[1] = byte(s >> 8)
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
