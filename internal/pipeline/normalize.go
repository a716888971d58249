package pipeline

import (
	"github.com/agentwood/voice-engine/internal/catalog"
)

// Thresholds for mapping acoustic features into the voice taxonomy.
const (
	warmValence = 0.6
	coolValence = 0.35

	highArousal   = 0.6
	mediumArousal = 0.3

	casualTempo = 3.0
	formalTempo = 1.5
)

// normalize maps numeric features onto the same categorical taxonomy the
// voice catalog uses, so contributed voices become matchable profiles.
func normalize(pitch, tempo, valence, arousal float64) (tone, energy, formality string) {
	switch {
	case valence > warmValence:
		tone = string(catalog.ToneWarm)
	case valence < coolValence:
		tone = string(catalog.ToneCool)
	default:
		tone = string(catalog.ToneNeutral)
	}

	switch {
	case arousal > highArousal:
		energy = string(catalog.EnergyHigh)
	case arousal > mediumArousal:
		energy = string(catalog.EnergyMedium)
	default:
		energy = string(catalog.EnergyLow)
	}

	// Slow measured delivery reads as formal, rapid speech as casual.
	switch {
	case tempo > casualTempo:
		formality = string(catalog.FormalityCasual)
	case tempo > 0 && tempo < formalTempo:
		formality = string(catalog.FormalityFormal)
	default:
		formality = string(catalog.FormalityNeutral)
	}

	return tone, energy, formality
}
