package match

import "github.com/agentwood/voice-engine/internal/catalog"

// Component weights. These are load-bearing for compatibility with stored
// match scores; do not tune without re-auditing existing assignments.
const (
	genderWeight  = 0.5
	ageWeight     = 0.2
	keywordWeight = 0.3
)

// Score computes the weighted similarity between a character's attributes
// and one voice profile. The result is always within [0, 1].
func Score(attrs Attributes, profile *catalog.Profile) float64 {
	return scoreGender(attrs, profile) + scoreAge(attrs, profile) + scoreKeywords(attrs, profile)
}

func scoreGender(attrs Attributes, profile *catalog.Profile) float64 {
	if attrs.Gender == catalog.GenderNeutral {
		// Unknown or ambiguous character gender: half credit against any voice.
		return genderWeight / 2
	}
	switch {
	case attrs.Gender == profile.Gender:
		return genderWeight
	case profile.Gender == catalog.GenderNeutral:
		// Neutral voices can serve either gender.
		return genderWeight / 2
	default:
		return 0
	}
}

func scoreAge(attrs Attributes, profile *catalog.Profile) float64 {
	if !attrs.AgeExplicit {
		return ageWeight / 2
	}
	distance := attrs.Age.Ordinal() - profile.Age.Ordinal()
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		return ageWeight
	case 1:
		return ageWeight / 2
	default:
		return 0
	}
}

func scoreKeywords(attrs Attributes, profile *catalog.Profile) float64 {
	voiceKeywords := make(map[string]bool, len(profile.Keywords))
	for _, kw := range profile.Keywords {
		voiceKeywords[kw] = true
	}

	shared := 0
	for _, kw := range attrs.Keywords {
		if voiceKeywords[kw] {
			shared++
		}
	}

	denom := len(attrs.Keywords)
	if len(profile.Keywords) > denom {
		denom = len(profile.Keywords)
	}
	if denom < 1 {
		denom = 1
	}
	return keywordWeight * float64(shared) / float64(denom)
}
