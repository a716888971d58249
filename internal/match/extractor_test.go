package match

import (
	"testing"

	"github.com/agentwood/voice-engine/internal/catalog"
)

func TestExtract_GenderFromPronouns(t *testing.T) {
	cases := []struct {
		text string
		want catalog.Gender
	}{
		{"He is a brave knight who protects his kingdom", catalog.GenderMale},
		{"She is a kind healer, her patients adore her", catalog.GenderFemale},
		{"He and his wife run the inn together, she cooks", catalog.GenderNeutral}, // both families
		{"A wandering spirit of the forest", catalog.GenderNeutral},                // no signal
		{"", catalog.GenderNeutral},
	}

	for _, tc := range cases {
		got := Extract(tc.text).Gender
		if got != tc.want {
			t.Errorf("Extract(%q).Gender = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestExtract_GenderWordBoundaries(t *testing.T) {
	// "shell" contains "he" and "theater" contains "he"; word boundaries must
	// prevent these from counting as male signal.
	attrs := Extract("A shell collector at the theater")
	if attrs.Gender != catalog.GenderNeutral {
		t.Errorf("expected neutral gender, got %s", attrs.Gender)
	}
}

func TestExtract_AgeCues(t *testing.T) {
	cases := []struct {
		text         string
		want         catalog.AgeBracket
		wantExplicit bool
	}{
		{"a young apprentice", catalog.AgeYoung, true},
		{"a teen detective", catalog.AgeYoung, true},
		{"an old lighthouse keeper", catalog.AgeOld, true},
		{"an elder of the village council", catalog.AgeOld, true},
		{"a merchant from the capital", catalog.AgeMiddle, false},
		{"", catalog.AgeMiddle, false},
	}

	for _, tc := range cases {
		attrs := Extract(tc.text)
		if attrs.Age != tc.want || attrs.AgeExplicit != tc.wantExplicit {
			t.Errorf("Extract(%q) age = %s (explicit=%v), want %s (explicit=%v)",
				tc.text, attrs.Age, attrs.AgeExplicit, tc.want, tc.wantExplicit)
		}
	}
}

func TestExtract_NumericAgeOverridesCues(t *testing.T) {
	cases := []struct {
		text string
		want catalog.AgeBracket
	}{
		{"a young-at-heart woman, 72 years old", catalog.AgeOld},
		{"he is 25 years old", catalog.AgeYoung},
		{"a 45-year-old professor", catalog.AgeMiddle},
		{"she is 29 years old", catalog.AgeYoung},
		{"60 years old and proud", catalog.AgeOld},
	}

	for _, tc := range cases {
		attrs := Extract(tc.text)
		if attrs.Age != tc.want {
			t.Errorf("Extract(%q).Age = %s, want %s", tc.text, attrs.Age, tc.want)
		}
		if !attrs.AgeExplicit {
			t.Errorf("Extract(%q) expected explicit age", tc.text)
		}
	}
}

func TestExtract_Keywords(t *testing.T) {
	attrs := Extract("A confident, warm and confident mentor. Warm but serious.")

	if len(attrs.Keywords) != 3 {
		t.Fatalf("keywords = %v, want 3 distinct traits", attrs.Keywords)
	}
	seen := make(map[string]bool)
	for _, kw := range attrs.Keywords {
		seen[kw] = true
	}
	for _, want := range []string{"confident", "warm", "serious"} {
		if !seen[want] {
			t.Errorf("keywords = %v, missing %q", attrs.Keywords, want)
		}
	}
}

func TestExtract_EmptyTextDefaults(t *testing.T) {
	attrs := Extract("")

	if attrs.Gender != catalog.GenderNeutral {
		t.Errorf("gender = %s, want neutral", attrs.Gender)
	}
	if attrs.Age != catalog.AgeMiddle || attrs.AgeExplicit {
		t.Errorf("age = %s (explicit=%v), want middle default", attrs.Age, attrs.AgeExplicit)
	}
	if len(attrs.Keywords) != 0 {
		t.Errorf("keywords = %v, want empty", attrs.Keywords)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	const text = "She is a wise old storyteller, warm and gentle"
	first := Extract(text)
	for i := 0; i < 10; i++ {
		again := Extract(text)
		if again.Gender != first.Gender || again.Age != first.Age || len(again.Keywords) != len(first.Keywords) {
			t.Fatalf("extraction not deterministic: %+v vs %+v", first, again)
		}
	}
}
