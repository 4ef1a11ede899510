// Package report formats scoring results for humans and machines.
// Formatting only — consumers that want different output work straight
// off the score types.
package report

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/whence/internal/score"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))
)

const barWidth = 20

// FormatText renders one target's result as a human-readable report.
func FormatText(res *score.Result, label string) string {
	var b strings.Builder

	sep := strings.Repeat("=", 60)
	header := fmt.Sprintf("%s — %s", label, strings.ToUpper(res.Check))

	fmt.Fprintf(&b, "\n%s\n", sep)
	fmt.Fprintf(&b, "  %s\n", titleStyle.Render(header))
	fmt.Fprintf(&b, "  adjusted score: %s   (0 = random, 1 = perfect)\n",
		scoreStyle(res.AdjustedScore).Render(fmt.Sprintf("%+.2f", res.AdjustedScore)))
	fmt.Fprintf(&b, "  raw accuracy:   %.1f%%  (%d/%d, chance %.1f%%, %d categories)\n",
		res.RawScore*100, res.CorrectCount(), res.Total(), res.ChanceLevel*100, res.NumCategories)
	if res.Failed > 0 {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("%d tasks failed and were excluded", res.Failed)))
	}
	fmt.Fprintf(&b, "%s\n", sep)

	if len(res.CategoryScores) > 0 {
		b.WriteString("\nPer-category breakdown:\n")
		for _, cs := range sortedByScore(res.CategoryScores) {
			if cs.Total == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %-40s %s %3.0f%% (%d/%d)\n",
				truncate(cs.Name, 40), bar(cs.Score), cs.Score*100, cs.Correct, cs.Total)
		}
	}

	if wrong := confidentlyWrong(res.Results, 5); len(wrong) > 0 {
		b.WriteString("\nMost confidently wrong guesses (potential decomposition issues):\n")
		for _, r := range wrong {
			fmt.Fprintf(&b, "  * %q\n", truncate(r.Item, 70))
			fmt.Fprintf(&b, "    actual: %s  ->  guessed: %s (confidence: %.0f%%)\n",
				r.Actual, r.Guessed, r.Confidence*100)
		}
	}

	if len(res.ConfusedPairs) > 0 {
		b.WriteString("\nMost confused pairs:\n")
		for i, cp := range res.ConfusedPairs {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "  %s  <->  %s  (%d mismatches)\n",
				cp.CategoryA, cp.CategoryB, cp.Count)
		}
	}

	return b.String()
}

// FormatSummary renders the cross-run weighted summary.
func FormatSummary(s *score.Summary) string {
	var b strings.Builder

	sep := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "\n%s\n", sep)
	fmt.Fprintf(&b, "  %s\n", titleStyle.Render("OVERALL"))
	fmt.Fprintf(&b, "%s\n", sep)

	for _, e := range s.Entries() {
		fmt.Fprintf(&b, "  %-46s %s  (weight %d)\n",
			truncate(e.Label, 46),
			scoreStyle(e.Result.AdjustedScore).Render(fmt.Sprintf("%+.2f", e.Result.AdjustedScore)),
			e.Result.Weight)
	}

	overall := s.Overall()
	fmt.Fprintf(&b, "\n  weighted adjusted score: %s  (total weight %d)\n",
		scoreStyle(overall).Render(fmt.Sprintf("%+.2f", overall)), s.TotalWeight())

	return b.String()
}

func scoreStyle(v float64) lipgloss.Style {
	if v >= 0.5 {
		return goodStyle
	}
	if v < 0 {
		return badStyle
	}
	return lipgloss.NewStyle()
}

func bar(score float64) string {
	filled := int(score * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

func sortedByScore(scores []score.CategoryScore) []score.CategoryScore {
	out := make([]score.CategoryScore, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// confidentlyWrong returns up to n incorrect results, most confident first.
func confidentlyWrong(results []score.GuessResult, n int) []score.GuessResult {
	var wrong []score.GuessResult
	for _, r := range results {
		if !r.Correct {
			wrong = append(wrong, r)
		}
	}
	sort.SliceStable(wrong, func(i, j int) bool { return wrong[i].Confidence > wrong[j].Confidence })
	if len(wrong) > n {
		wrong = wrong[:n]
	}
	return wrong
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	// Back up to a rune boundary so the cut never splits a multibyte rune.
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
