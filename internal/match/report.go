package match

import (
	"fmt"
	"strings"
	"time"
)

// AuditEntry is one character's row in an offline matching audit.
type AuditEntry struct {
	Character    string `json:"character"`
	CurrentVoice string `json:"current_voice"`
	Description  string `json:"description"`
}

// AuditRow is the evaluated result for one character.
type AuditRow struct {
	Character        string
	CurrentVoice     string
	DetectedGender   string
	DetectedAge      string
	RecommendedVoice string
	Score            float64
	Issues           []string
}

// Audit evaluates every entry against the catalog under the strict threshold
// and flags stale or mismatched assignments.
func (m *Matcher) Audit(entries []AuditEntry) []AuditRow {
	rows := make([]AuditRow, 0, len(entries))
	for _, e := range entries {
		attrs := Extract(e.Description)
		row := AuditRow{
			Character:      e.Character,
			CurrentVoice:   e.CurrentVoice,
			DetectedGender: string(attrs.Gender),
			DetectedAge:    string(attrs.Age),
		}

		result, err := m.Match(attrs, StrictThreshold)
		if err != nil {
			row.Issues = append(row.Issues, fmt.Sprintf("no voice cleared %.2f threshold", StrictThreshold))
			rows = append(rows, row)
			continue
		}

		row.RecommendedVoice = result.Voice
		row.Score = result.Score

		if e.CurrentVoice == "" {
			row.Issues = append(row.Issues, "no voice assigned")
		} else if e.CurrentVoice != result.Voice {
			row.Issues = append(row.Issues, fmt.Sprintf("assigned %s but %s scores higher", e.CurrentVoice, result.Voice))
		}

		if current, ok := m.catalog.Get(e.CurrentVoice); ok {
			if attrs.Gender != "neutral" && current.Gender != "neutral" && string(attrs.Gender) != string(current.Gender) {
				row.Issues = append(row.Issues, fmt.Sprintf("gender mismatch: character %s, voice %s", attrs.Gender, current.Gender))
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// RenderMarkdown formats audit rows as a markdown table report.
func RenderMarkdown(rows []AuditRow) string {
	var b strings.Builder

	b.WriteString("# Voice Matching Audit\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Characters audited: %d\n\n", len(rows)))

	b.WriteString("| Character | Current Voice | Detected Gender | Detected Age | Recommended Voice | Score | Issues |\n")
	b.WriteString("|-----------|---------------|-----------------|--------------|-------------------|-------|--------|\n")

	for _, row := range rows {
		issues := "-"
		if len(row.Issues) > 0 {
			issues = strings.Join(row.Issues, "; ")
		}
		current := row.CurrentVoice
		if current == "" {
			current = "-"
		}
		recommended := row.RecommendedVoice
		score := "-"
		if recommended == "" {
			recommended = "-"
		} else {
			score = fmt.Sprintf("%.2f", row.Score)
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			row.Character, current, row.DetectedGender, row.DetectedAge, recommended, score, issues))
	}

	return b.String()
}
