package score

import "testing"

func TestSummary_OverallWeighted(t *testing.T) {
	var s Summary
	s.Add("big", &Result{AdjustedScore: 1.0, Weight: 300})
	s.Add("small", &Result{AdjustedScore: 0.0, Weight: 100})

	if got := s.Overall(); !almostEqual(got, 0.75) {
		t.Fatalf("overall = %v, want 0.75", got)
	}
	if s.TotalWeight() != 400 {
		t.Fatalf("total weight = %d, want 400", s.TotalWeight())
	}
}

func TestSummary_ZeroWeightRunIgnored(t *testing.T) {
	var s Summary
	s.Add("a", &Result{AdjustedScore: 0.5, Weight: 100})
	s.Add("b", &Result{AdjustedScore: -1.0, Weight: 0})

	if got := s.Overall(); !almostEqual(got, 0.5) {
		t.Fatalf("overall = %v, want 0.5", got)
	}
}

func TestSummary_AllZeroWeight(t *testing.T) {
	var s Summary
	s.Add("a", &Result{AdjustedScore: 0.9, Weight: 0})

	if got := s.Overall(); got != 0 {
		t.Fatalf("overall = %v, want 0", got)
	}
}

func TestSummary_Empty(t *testing.T) {
	var s Summary
	if s.Overall() != 0 || s.Len() != 0 {
		t.Fatalf("empty summary: overall = %v len = %d", s.Overall(), s.Len())
	}
}

func TestZeroResult_DragsOverallDown(t *testing.T) {
	// A target that can't be decomposed substitutes a zero score with its
	// real weight, pulling the average toward zero.
	var s Summary
	s.Add("scored", &Result{AdjustedScore: 0.8, Weight: 100})
	s.Add("flat", ZeroResult("file-to-folder", 100))

	if got := s.Overall(); !almostEqual(got, 0.4) {
		t.Fatalf("overall = %v, want 0.4", got)
	}

	z := ZeroResult("file-to-folder", 100)
	if z.Check != "file-to-folder" || z.Weight != 100 || z.AdjustedScore != 0 {
		t.Fatalf("zero result = %+v", z)
	}
}

func TestSummary_Entries(t *testing.T) {
	var s Summary
	s.Add("first", &Result{Weight: 1})
	s.Add("second", &Result{Weight: 2})

	entries := s.Entries()
	if len(entries) != 2 || entries[0].Label != "first" || entries[1].Label != "second" {
		t.Fatalf("entries = %+v", entries)
	}
}
