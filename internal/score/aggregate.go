package score

import "sort"

// buildResult reduces collected guess results into a Result. The reduction
// is commutative: it never depends on the order tasks completed in.
//
// Chance adjustment is computed per task, not at the aggregate level. With
// k candidates the chance level is 1/k; a correct guess scores 1 and an
// incorrect one scores -chance/(1-chance), the generalization of the
// classic (raw - 1/k)/(1 - 1/k) formula to per-task variable k. A fixed-k
// formula over the aggregate would misstate the baseline whenever k varies
// within a run, which neighborhood-scoped checks routinely cause.
func buildResult(check string, scored []GuessResult, tasks []ClassificationTask) *Result {
	total := len(scored)

	correct := 0
	var adjustedSum, chanceSum float64
	for _, r := range scored {
		if r.Correct {
			correct++
		}
		chance := 1.0 / float64(r.NumCandidates)
		chanceSum += chance
		if r.Correct {
			adjustedSum += 1
		} else {
			adjustedSum += (0 - chance) / (1 - chance)
		}
	}

	res := &Result{
		Check:   check,
		Results: scored,
	}
	if total > 0 {
		res.RawScore = float64(correct) / float64(total)
		res.AdjustedScore = adjustedSum / float64(total)
		res.ChanceLevel = chanceSum / float64(total)
	}

	// Distinct candidates across the sampled tasks. Informational only.
	universe := make(map[string]struct{})
	for _, t := range tasks {
		for _, c := range t.Candidates {
			universe[c] = struct{}{}
		}
	}
	res.NumCategories = len(universe)

	res.CategoryScores = categoryScores(scored, tasks)
	res.ConfusedPairs = confusedPairs(scored)
	return res
}

// categoryScores groups results by actual category, in first-appearance
// order of the tasks.
func categoryScores(scored []GuessResult, tasks []ClassificationTask) []CategoryScore {
	var order []string
	seen := make(map[string]bool)
	for _, t := range tasks {
		if !seen[t.Actual] {
			order = append(order, t.Actual)
			seen[t.Actual] = true
		}
	}

	byCat := make(map[string][]GuessResult)
	for _, r := range scored {
		byCat[r.Actual] = append(byCat[r.Actual], r)
	}

	out := make([]CategoryScore, 0, len(order))
	for _, name := range order {
		rs := byCat[name]
		c := 0
		for _, r := range rs {
			if r.Correct {
				c++
			}
		}
		cs := CategoryScore{Name: name, Total: len(rs), Correct: c}
		if len(rs) > 0 {
			cs.Score = float64(c) / float64(len(rs))
		}
		out = append(out, cs)
	}
	return out
}

// confusedPairs counts misclassifications per unordered category pair.
// (a,b) and (b,a) merge into one counter, so systematic mutual confusion
// between two categories surfaces as a single entry.
func confusedPairs(scored []GuessResult) []ConfusedPair {
	type key struct{ a, b string }
	counts := make(map[key]int)
	for _, r := range scored {
		if r.Correct || r.Guessed == "" {
			continue
		}
		a, b := r.Actual, r.Guessed
		if b < a {
			a, b = b, a
		}
		counts[key{a, b}]++
	}

	out := make([]ConfusedPair, 0, len(counts))
	for k, c := range counts {
		out = append(out, ConfusedPair{CategoryA: k.a, CategoryB: k.b, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].CategoryA != out[j].CategoryA {
			return out[i].CategoryA < out[j].CategoryA
		}
		return out[i].CategoryB < out[j].CategoryB
	})
	return out
}
