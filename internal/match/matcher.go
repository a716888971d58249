package match

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/agentwood/voice-engine/internal/catalog"
)

// DefaultThreshold is the minimum score for a voice assignment.
// StrictThreshold is the tighter bar used by validation and audit runs.
const (
	DefaultThreshold = 0.65
	StrictThreshold  = 0.8
)

// maxCandidates caps the ranked list at the selection plus four runners-up.
const maxCandidates = 5

// NoMatchError reports that no catalog voice cleared the threshold. Callers
// must fall back (keep the current assignment, widen the threshold) rather
// than leave a character voiceless.
type NoMatchError struct {
	Threshold float64
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no voice cleared match threshold %.2f", e.Threshold)
}

// Candidate is one scored catalog entry.
type Candidate struct {
	Voice string  `json:"voice"`
	Score float64 `json:"score"`
}

// Result is the outcome of a successful match: the selected voice plus the
// ranked candidate list (selection first, at most four runners-up).
type Result struct {
	Voice      string      `json:"voice"`
	Score      float64     `json:"score"`
	Candidates []Candidate `json:"candidates"`
}

// Matcher ranks catalog voices against extracted character attributes.
type Matcher struct {
	catalog *catalog.Catalog
	log     zerolog.Logger
}

// NewMatcher creates a matcher over the given catalog.
func NewMatcher(cat *catalog.Catalog, log zerolog.Logger) *Matcher {
	return &Matcher{catalog: cat, log: log.With().Str("component", "matcher").Logger()}
}

// Match scores every catalog entry against attrs and returns the best voice
// at or above threshold. Ties keep catalog order. A threshold of zero or
// below selects DefaultThreshold.
func (m *Matcher) Match(attrs Attributes, threshold float64) (*Result, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	profiles := m.catalog.Profiles()
	candidates := make([]Candidate, 0, len(profiles))
	for i := range profiles {
		score := Score(attrs, &profiles[i])
		if score >= threshold {
			candidates = append(candidates, Candidate{Voice: profiles[i].Name, Score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) == 0 {
		m.log.Debug().
			Str("gender", string(attrs.Gender)).
			Str("age", string(attrs.Age)).
			Float64("threshold", threshold).
			Msg("no voice cleared threshold")
		return nil, &NoMatchError{Threshold: threshold}
	}

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	best := candidates[0]
	m.log.Debug().
		Str("voice", best.Voice).
		Float64("score", best.Score).
		Int("candidates", len(candidates)).
		Msg("voice matched")

	return &Result{Voice: best.Voice, Score: best.Score, Candidates: candidates}, nil
}

// MatchText extracts attributes from raw description text and matches them.
func (m *Matcher) MatchText(text string, threshold float64) (*Result, error) {
	return m.Match(Extract(text), threshold)
}

// Validation reports whether a character's currently assigned voice is still
// the recommended choice under the strict threshold.
type Validation struct {
	Valid            bool    `json:"valid"`
	MatchScore       float64 `json:"match_score,omitempty"`
	RecommendedVoice string  `json:"recommended_voice,omitempty"`
}

// ValidateAssignment re-runs matching for a character and checks the current
// voice against the top recommendation. Used by periodic audits, not on the
// request path.
func (m *Matcher) ValidateAssignment(attrs Attributes, currentVoice string, threshold float64) Validation {
	if threshold <= 0 {
		threshold = StrictThreshold
	}

	result, err := m.Match(attrs, threshold)
	if err != nil {
		return Validation{Valid: false}
	}

	return Validation{
		Valid:            result.Voice == currentVoice,
		MatchScore:       result.Score,
		RecommendedVoice: result.Voice,
	}
}
