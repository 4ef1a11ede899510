package report

import (
	"encoding/json"

	"github.com/abhisek/whence/internal/score"
)

// jsonReport is the machine-readable shape of a whole session.
type jsonReport struct {
	Targets     []score.SummaryEntry `json:"targets"`
	Overall     float64              `json:"overall_adjusted_score"`
	TotalWeight int                  `json:"total_weight"`
}

// FormatJSON renders the session summary as indented JSON.
func FormatJSON(s *score.Summary) (string, error) {
	out, err := json.MarshalIndent(jsonReport{
		Targets:     s.Entries(),
		Overall:     s.Overall(),
		TotalWeight: s.TotalWeight(),
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
