package score

// ClassificationTask is a single classification question: an item pulled
// from the target, the category it actually belongs to, and every category
// the judge may pick from. Candidates always contain Actual; a task is only
// meaningful when at least 2 candidates exist.
type ClassificationTask struct {
	Item       string
	Actual     string
	Candidates []string
}

// GuessResult is the recorded outcome of judging a single task.
// NumCandidates is carried per result because candidate-set size varies
// task to task (neighborhood-scoped checks).
type GuessResult struct {
	Item          string  `json:"item"`
	Actual        string  `json:"actual"`
	Guessed       string  `json:"guessed"`
	Confidence    float64 `json:"confidence"`
	Correct       bool    `json:"correct"`
	NumCandidates int     `json:"num_candidates"`
}

// CategoryScore is the per-category rollup: how often items that actually
// belong to this category were recognized as such.
type CategoryScore struct {
	Name    string  `json:"name"`
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
	Score   float64 `json:"score"`
}

// ConfusedPair counts mutual misclassifications between two categories,
// in either direction. CategoryA sorts before CategoryB.
type ConfusedPair struct {
	CategoryA string `json:"category_a"`
	CategoryB string `json:"category_b"`
	Count     int    `json:"count"`
}

// Result is the aggregate outcome of one scoring run over one target.
//
// RawScore is plain accuracy in [0,1]. AdjustedScore normalizes against
// chance: 0 means indistinguishable from random guessing, 1 means perfect,
// negative means worse than random. NumCategories is reported for display
// only and never feeds back into the scoring math.
type Result struct {
	Check          string          `json:"check"`
	Results        []GuessResult   `json:"results"`
	CategoryScores []CategoryScore `json:"category_scores"`
	ConfusedPairs  []ConfusedPair  `json:"confused_pairs"`
	RawScore       float64         `json:"raw_score"`
	AdjustedScore  float64         `json:"adjusted_score"`
	ChanceLevel    float64         `json:"chance_level"`
	NumCategories  int             `json:"num_categories"`
	Failed         int             `json:"failed"`

	// Weight is a caller-supplied size measure (e.g. lines of code),
	// used by cross-run aggregation. Zero when the caller never set one.
	Weight int `json:"weight"`
}

// Total returns the number of scored tasks.
func (r *Result) Total() int {
	return len(r.Results)
}

// CorrectCount returns the number of correctly judged tasks.
func (r *Result) CorrectCount() int {
	n := 0
	for _, g := range r.Results {
		if g.Correct {
			n++
		}
	}
	return n
}
