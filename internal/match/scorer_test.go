package match

import (
	"testing"

	"github.com/agentwood/voice-engine/internal/catalog"
)

func maleOldProfile() *catalog.Profile {
	return &catalog.Profile{
		Name: "test-voice", Gender: catalog.GenderMale, Age: catalog.AgeOld,
		Tone: catalog.ToneCool, Energy: catalog.EnergyLow, Formality: catalog.FormalityFormal,
		Keywords: []string{"authoritative", "wise"},
	}
}

func TestScore_ExactGenderFullWeight(t *testing.T) {
	attrs := Attributes{Gender: catalog.GenderMale, Age: catalog.AgeOld, AgeExplicit: true}
	score := Score(attrs, maleOldProfile())

	// 0.5 gender + 0.2 age + 0 keywords
	if score != 0.7 {
		t.Errorf("score = %v, want 0.7", score)
	}
}

func TestScore_GenderMismatchZeroComponent(t *testing.T) {
	profile := maleOldProfile()
	profile.Gender = catalog.GenderFemale

	attrs := Attributes{Gender: catalog.GenderMale, Age: catalog.AgeOld, AgeExplicit: true}
	score := Score(attrs, profile)

	// Only the age component survives.
	if score != 0.2 {
		t.Errorf("score = %v, want 0.2 (gender component must be zero)", score)
	}
}

func TestScore_NeutralVoicePartialCredit(t *testing.T) {
	profile := maleOldProfile()
	profile.Gender = catalog.GenderNeutral

	attrs := Attributes{Gender: catalog.GenderFemale, Age: catalog.AgeOld, AgeExplicit: true}
	score := Score(attrs, profile)

	if score != 0.25+0.2 {
		t.Errorf("score = %v, want 0.45", score)
	}
}

func TestScore_UnknownCharacterGenderFlatCredit(t *testing.T) {
	attrs := Attributes{Gender: catalog.GenderNeutral, Age: catalog.AgeOld, AgeExplicit: true}

	for _, g := range []catalog.Gender{catalog.GenderMale, catalog.GenderFemale, catalog.GenderNeutral} {
		profile := maleOldProfile()
		profile.Gender = g
		if got := Score(attrs, profile); got != 0.25+0.2 {
			t.Errorf("voice gender %s: score = %v, want 0.45", g, got)
		}
	}
}

func TestScore_AgeAdjacency(t *testing.T) {
	cases := []struct {
		charAge  catalog.AgeBracket
		voiceAge catalog.AgeBracket
		want     float64
	}{
		{catalog.AgeOld, catalog.AgeOld, 0.2},
		{catalog.AgeMiddle, catalog.AgeOld, 0.1},
		{catalog.AgeOld, catalog.AgeMiddle, 0.1},
		{catalog.AgeYoung, catalog.AgeMiddle, 0.1},
		{catalog.AgeYoung, catalog.AgeOld, 0.0},
		{catalog.AgeOld, catalog.AgeYoung, 0.0},
	}

	for _, tc := range cases {
		profile := maleOldProfile()
		profile.Age = tc.voiceAge
		profile.Keywords = nil
		attrs := Attributes{Gender: catalog.GenderMale, Age: tc.charAge, AgeExplicit: true}

		got := Score(attrs, profile)
		if want := 0.5 + tc.want; got != want {
			t.Errorf("char %s vs voice %s: score = %v, want %v", tc.charAge, tc.voiceAge, got, want)
		}
	}
}

func TestScore_NoAgeSignalFlatCredit(t *testing.T) {
	attrs := Attributes{Gender: catalog.GenderMale, Age: catalog.AgeMiddle, AgeExplicit: false}
	profile := maleOldProfile()
	profile.Keywords = nil

	if got := Score(attrs, profile); got != 0.5+0.1 {
		t.Errorf("score = %v, want 0.6 (flat 0.1 age credit)", got)
	}
}

func TestScore_KeywordOverlap(t *testing.T) {
	attrs := Attributes{
		Gender: catalog.GenderMale, Age: catalog.AgeOld, AgeExplicit: true,
		Keywords: []string{"authoritative"},
	}
	score := Score(attrs, maleOldProfile())

	// 0.5 + 0.2 + 0.3 * (1 / max(1, 2))
	want := 0.5 + 0.2 + 0.3*0.5
	if score != want {
		t.Errorf("score = %v, want %v", score, want)
	}
}

func TestScore_Bounds(t *testing.T) {
	texts := []string{
		"",
		"He is a gruff, authoritative old sea captain",
		"She is a playful young girl, energetic and bubbly and cheerful",
		"A mysterious figure of 200 years old",
	}
	cat := catalog.Default()

	for _, text := range texts {
		attrs := Extract(text)
		for _, p := range cat.Profiles() {
			profile := p
			score := Score(attrs, &profile)
			if score < 0 || score > 1 {
				t.Errorf("score out of bounds for %q vs %s: %v", text, p.Name, score)
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	attrs := Extract("He is a gruff, authoritative old sea captain")
	profile := maleOldProfile()

	first := Score(attrs, profile)
	for i := 0; i < 10; i++ {
		if got := Score(attrs, profile); got != first {
			t.Fatalf("score not deterministic: %v vs %v", first, got)
		}
	}
}
