// Package match scores voice profiles against character attributes and picks
// the best voice for a character above a confidence threshold.
package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agentwood/voice-engine/internal/catalog"
)

// Attributes is the normalized attribute set extracted from a character's
// free-text description. AgeExplicit reports whether the age bracket came
// from an actual textual cue rather than the middle-age default.
type Attributes struct {
	Gender      catalog.Gender
	Age         catalog.AgeBracket
	AgeExplicit bool
	Keywords    []string
}

var (
	maleWords   = regexp.MustCompile(`\b(he|his|him|male|boy|man|guy|gentleman|father|dad|son|brother|husband)\b`)
	femaleWords = regexp.MustCompile(`\b(she|her|hers|female|girl|woman|lady|mother|mom|daughter|sister|wife)\b`)

	// Matches "42 years old", "42-year-old" and similar phrasings.
	numericAge = regexp.MustCompile(`\b(\d{1,3})[-\s]years?[-\s]old\b`)
)

// personalityVocabulary is the fixed set of trait words recognized during
// keyword extraction.
var personalityVocabulary = []string{
	"shy", "confident", "energetic", "calm", "aggressive", "gentle", "serious", "playful",
	"wise", "naive", "mature", "youthful", "cheerful", "sad", "angry", "happy",
	"friendly", "aloof", "warm", "cold", "enthusiastic", "laid-back", "formal", "casual",
	"professional", "amateur", "experienced", "inexperienced", "brave", "cowardly",
	"strong", "weak", "tall", "short", "sophisticated", "elegant", "refined",
	"mysterious", "sultry", "bright", "optimistic", "upbeat", "vibrant",
	"deep", "authoritative", "commanding", "gravitas",
	"bold", "assertive", "fearless", "sweet", "innocent", "tender", "kind",
	"motherly", "nurturing", "caring", "compassionate", "serene", "peaceful",
	"brooding", "introspective", "independent",
}

var youngCues = []string{"young", "teen", "child", "kid", "youthful"}
var oldCues = []string{"old", "elder", "senior", "aged"}

// Extract derives gender, age bracket and personality keywords from free
// character text. It is a pure function: missing signal degrades to the
// neutral/middle defaults instead of failing.
func Extract(text string) Attributes {
	lower := strings.ToLower(text)
	age := extractAge(lower)

	return Attributes{
		Gender:      extractGender(lower),
		Age:         age.bracket,
		AgeExplicit: age.explicit,
		Keywords:    extractKeywords(lower),
	}
}

func extractGender(text string) catalog.Gender {
	hasMale := maleWords.MatchString(text)
	hasFemale := femaleWords.MatchString(text)

	switch {
	case hasMale && !hasFemale:
		return catalog.GenderMale
	case hasFemale && !hasMale:
		return catalog.GenderFemale
	default:
		// Both families present is ambiguous; neither present is unknown.
		// Either way the conservative answer is neutral.
		return catalog.GenderNeutral
	}
}

type ageSignal struct {
	bracket  catalog.AgeBracket
	explicit bool
}

func extractAge(text string) ageSignal {
	// A stated numeric age wins over any keyword cue.
	if m := numericAge.FindStringSubmatch(text); m != nil {
		years, err := strconv.Atoi(m[1])
		if err == nil {
			switch {
			case years < 30:
				return ageSignal{catalog.AgeYoung, true}
			case years < 60:
				return ageSignal{catalog.AgeMiddle, true}
			default:
				return ageSignal{catalog.AgeOld, true}
			}
		}
	}

	for _, cue := range youngCues {
		if strings.Contains(text, cue) {
			return ageSignal{catalog.AgeYoung, true}
		}
	}
	for _, cue := range oldCues {
		if strings.Contains(text, cue) {
			return ageSignal{catalog.AgeOld, true}
		}
	}
	return ageSignal{catalog.AgeMiddle, false}
}

func extractKeywords(text string) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, trait := range personalityVocabulary {
		if strings.Contains(text, trait) && !seen[trait] {
			seen[trait] = true
			keywords = append(keywords, trait)
		}
	}
	return keywords
}
