package score

// SummaryEntry pairs a scored target with its label (usually a path).
type SummaryEntry struct {
	Label  string  `json:"label"`
	Result *Result `json:"result"`
}

// Summary combines results from multiple scoring runs (one per file or
// folder scanned) into a single weighted figure. It only reads the Results
// it is given and never mutates them.
type Summary struct {
	entries []SummaryEntry
}

// Add records one run under the given label.
func (s *Summary) Add(label string, r *Result) {
	s.entries = append(s.entries, SummaryEntry{Label: label, Result: r})
}

// Entries returns the recorded runs in insertion order.
func (s *Summary) Entries() []SummaryEntry {
	return s.entries
}

// Len returns the number of recorded runs.
func (s *Summary) Len() int {
	return len(s.entries)
}

// TotalWeight sums the weights of all recorded runs.
func (s *Summary) TotalWeight() int {
	w := 0
	for _, e := range s.entries {
		w += e.Result.Weight
	}
	return w
}

// Overall returns the weight-averaged adjusted score across all runs:
// sum(adjusted*weight)/sum(weight). Zero-weight runs contribute nothing;
// when every run has zero weight the overall score is 0.
func (s *Summary) Overall() float64 {
	var sum float64
	var weight int
	for _, e := range s.entries {
		sum += e.Result.AdjustedScore * float64(e.Result.Weight)
		weight += e.Result.Weight
	}
	if weight == 0 {
		return 0
	}
	return sum / float64(weight)
}

// ZeroResult builds the substitution placeholder for a target that could
// not be scored because it degenerates to a single category. An
// un-decomposed target should pull the overall score down in proportion to
// its size, not be invisible to it, so callers add this instead of
// skipping the target.
func ZeroResult(check string, weight int) *Result {
	return &Result{
		Check:  check,
		Weight: weight,
	}
}
