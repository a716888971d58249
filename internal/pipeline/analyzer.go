package pipeline

import (
	"context"
	"fmt"
	"math"

	"github.com/agentwood/voice-engine/internal/audio"
)

// Features are the acoustic measurements the analysis stage produces.
// Valence and arousal are in [0,1]; pitch is in Hz; tempo is an events-per-
// second estimate.
type Features struct {
	Pitch   float64 `json:"pitch"`
	Tempo   float64 `json:"tempo"`
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
}

// Analyzer is the acoustic-analysis boundary. The production deployment can
// point this at an external service; LocalAnalyzer is the in-process default.
type Analyzer interface {
	Analyze(ctx context.Context, clip *audio.Clip) (Features, error)
}

// LocalAnalyzer estimates features directly from the PCM samples. The
// estimates are coarse but deterministic, which is what the taxonomy
// mapping needs.
type LocalAnalyzer struct{}

func (LocalAnalyzer) Analyze(_ context.Context, clip *audio.Clip) (Features, error) {
	if clip == nil || len(clip.Samples) == 0 {
		return Features{}, fmt.Errorf("no samples to analyze")
	}

	zcr := audio.ZeroCrossingRate(clip.Samples)
	rms := audio.CalculateRMS(clip.Samples)

	// Zero-crossing rate approximates the dominant frequency: each cycle
	// crosses zero twice.
	pitch := zcr * float64(clip.SampleRate) / 2

	tempo := envelopePeaksPerSecond(clip)

	// RMS over the int16 range drives arousal; loud samples read as
	// energetic. Valence leans on pitch: higher voices score brighter.
	arousal := clamp01(rms / 8000)
	valence := clamp01(pitch / 400)

	return Features{
		Pitch:   pitch,
		Tempo:   tempo,
		Valence: valence,
		Arousal: arousal,
	}, nil
}

// envelopePeaksPerSecond counts rises of the amplitude envelope over 50ms
// windows, a rough syllable-rate proxy.
func envelopePeaksPerSecond(clip *audio.Clip) float64 {
	window := clip.SampleRate / 20
	if window == 0 {
		return 0
	}

	var envelope []float64
	for start := 0; start < len(clip.Samples); start += window {
		end := start + window
		if end > len(clip.Samples) {
			end = len(clip.Samples)
		}
		envelope = append(envelope, audio.CalculateRMS(clip.Samples[start:end]))
	}
	if len(envelope) < 3 {
		return 0
	}

	peaks := 0
	for i := 1; i < len(envelope)-1; i++ {
		if envelope[i] > envelope[i-1] && envelope[i] >= envelope[i+1] {
			peaks++
		}
	}
	return float64(peaks) / clip.Duration()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
