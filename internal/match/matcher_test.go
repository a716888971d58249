package match

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentwood/voice-engine/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Profile{
		{
			Name: "charon", Gender: catalog.GenderMale, Age: catalog.AgeOld,
			Tone: catalog.ToneCool, Energy: catalog.EnergyLow, Formality: catalog.FormalityFormal,
			Keywords: []string{"authoritative", "wise"},
		},
		{
			Name: "despina", Gender: catalog.GenderFemale, Age: catalog.AgeYoung,
			Tone: catalog.ToneWarm, Energy: catalog.EnergyHigh, Formality: catalog.FormalityCasual,
			Keywords: []string{"playful"},
		},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func TestMatcher_SeaCaptainSelectsCharon(t *testing.T) {
	m := NewMatcher(testCatalog(t), zerolog.Nop())

	result, err := m.MatchText("He is a gruff, authoritative old sea captain", DefaultThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Voice != "charon" {
		t.Errorf("selected %s, want charon", result.Voice)
	}
	if result.Score <= 0.65 {
		t.Errorf("score = %v, want > 0.65", result.Score)
	}
}

func TestMatcher_EmptyDescriptionNoMatch(t *testing.T) {
	m := NewMatcher(testCatalog(t), zerolog.Nop())

	_, err := m.MatchText("", DefaultThreshold)
	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("error = %v, want NoMatchError", err)
	}
	if noMatch.Threshold != DefaultThreshold {
		t.Errorf("threshold = %v, want %v", noMatch.Threshold, DefaultThreshold)
	}
}

func TestMatcher_ThresholdInvariant(t *testing.T) {
	m := NewMatcher(catalog.Default(), zerolog.Nop())

	texts := []string{
		"He is a gruff, authoritative old sea captain",
		"She is a playful young girl, energetic and bubbly",
		"A calm, steady man in his forties",
	}
	for _, text := range texts {
		for _, threshold := range []float64{0.3, DefaultThreshold, StrictThreshold} {
			result, err := m.MatchText(text, threshold)
			if err != nil {
				continue // no match is a valid outcome at high thresholds
			}
			if result.Score < threshold {
				t.Errorf("%q at %.2f: returned score %v below threshold", text, threshold, result.Score)
			}
			for _, c := range result.Candidates {
				if c.Score < threshold {
					t.Errorf("%q at %.2f: candidate %s score %v below threshold", text, threshold, c.Voice, c.Score)
				}
			}
		}
	}
}

func TestMatcher_CandidateListCappedAtFive(t *testing.T) {
	m := NewMatcher(catalog.Default(), zerolog.Nop())

	// A low threshold qualifies most of the catalog.
	result, err := m.MatchText("She is a warm, confident, energetic young woman", 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Candidates) > 5 {
		t.Errorf("candidates = %d, want at most 5", len(result.Candidates))
	}
	if result.Candidates[0].Voice != result.Voice {
		t.Errorf("candidate list must lead with the selection")
	}
	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i].Score > result.Candidates[i-1].Score {
			t.Errorf("candidates not sorted descending at index %d", i)
		}
	}
}

func TestMatcher_Deterministic(t *testing.T) {
	m := NewMatcher(catalog.Default(), zerolog.Nop())
	const text = "She is a warm, motherly baker who cares for everyone"

	first, err := m.MatchText(text, DefaultThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := m.MatchText(text, DefaultThreshold)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.Voice != first.Voice || again.Score != first.Score {
			t.Fatalf("match not deterministic: %s/%v vs %s/%v", first.Voice, first.Score, again.Voice, again.Score)
		}
	}
}

func TestMatcher_GenderMismatchPenalty(t *testing.T) {
	cat, err := catalog.New([]catalog.Profile{
		{
			Name: "ida", Gender: catalog.GenderFemale, Age: catalog.AgeMiddle,
			Tone: catalog.ToneWarm, Energy: catalog.EnergyMedium, Formality: catalog.FormalityNeutral,
		},
		{
			Name: "vela", Gender: catalog.GenderFemale, Age: catalog.AgeYoung,
			Tone: catalog.ToneWarm, Energy: catalog.EnergyHigh, Formality: catalog.FormalityCasual,
		},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	attrs := Attributes{Gender: catalog.GenderMale, Age: catalog.AgeMiddle, AgeExplicit: true}
	for _, p := range cat.Profiles() {
		profile := p
		score := Score(attrs, &profile)
		// Gender component must be exactly zero: only age credit remains.
		if score > 0.2 {
			t.Errorf("voice %s: score %v implies nonzero gender credit", p.Name, score)
		}
	}
}

func TestMatcher_ValidateAssignment(t *testing.T) {
	m := NewMatcher(testCatalog(t), zerolog.Nop())
	attrs := Extract("He is a gruff, authoritative old sea captain")

	v := m.ValidateAssignment(attrs, "charon", StrictThreshold)
	if !v.Valid {
		t.Errorf("expected charon to validate, got %+v", v)
	}

	v = m.ValidateAssignment(attrs, "despina", StrictThreshold)
	if v.Valid {
		t.Error("despina must not validate for a male character")
	}
	if v.RecommendedVoice != "charon" {
		t.Errorf("recommended = %s, want charon", v.RecommendedVoice)
	}
}

func TestAudit_RendersMarkdownTable(t *testing.T) {
	m := NewMatcher(testCatalog(t), zerolog.Nop())

	rows := m.Audit([]AuditEntry{
		{Character: "Captain Aldric", CurrentVoice: "despina", Description: "He is a gruff, authoritative old sea captain"},
		{Character: "Mist", CurrentVoice: "", Description: ""},
	})
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].RecommendedVoice != "charon" {
		t.Errorf("recommended = %s, want charon", rows[0].RecommendedVoice)
	}
	if len(rows[0].Issues) == 0 {
		t.Error("expected a mismatch issue for Captain Aldric")
	}
	if len(rows[1].Issues) == 0 {
		t.Error("expected a no-match issue for Mist")
	}

	report := RenderMarkdown(rows)
	if !strings.Contains(report, "| Captain Aldric | despina |") {
		t.Errorf("report missing character row:\n%s", report)
	}
	if !strings.Contains(report, "| Character | Current Voice |") {
		t.Error("report missing table header")
	}
}
