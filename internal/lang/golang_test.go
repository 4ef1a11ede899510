package lang

import (
	"strings"
	"testing"
)

const sampleSource = `package sample

type Counter struct {
	n int
}

func (c *Counter) Add(delta int) {
	c.n += delta
}

func (c *Counter) Value() int {
	return c.n
}

func Sum(vals []int) int {
	total := 0
	for _, v := range vals {
		total += v
	}
	return total
}

func Classify(n int) string {
	if n < 0 {
		return "negative"
	}
	switch {
	case n == 0:
		return "zero"
	default:
		return "positive"
	}
}
`

func TestExtractFunctions_Names(t *testing.T) {
	g := NewGo()
	funcs, err := g.ExtractFunctions(sampleSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, f := range funcs {
		names = append(names, f.Name)
	}
	want := []string{"Counter.Add", "Counter.Value", "Sum", "Classify"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestExtractFunctions_Statements(t *testing.T) {
	g := NewGo()
	funcs, err := g.ExtractFunctions(sampleSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byName := make(map[string][]string)
	for _, f := range funcs {
		byName[f.Name] = f.Statements
	}

	sum := byName["Sum"]
	wantSum := []string{
		"total := 0",
		"for _, v := range vals {",
		"total += v",
		"return total",
	}
	if strings.Join(sum, "|") != strings.Join(wantSum, "|") {
		t.Fatalf("Sum statements = %v, want %v", sum, wantSum)
	}

	// Headers of compound statements count as statements; case clauses
	// contribute their own headers.
	classify := byName["Classify"]
	joined := strings.Join(classify, "|")
	for _, want := range []string{"if n < 0 {", "switch {", "case n == 0:", `return "zero"`} {
		if !strings.Contains(joined, want) {
			t.Fatalf("Classify statements %v missing %q", classify, want)
		}
	}
}

func TestExtractFunctions_TrivialFiltered(t *testing.T) {
	src := `package sample

func Noop() error {
	return nil
}
`
	g := NewGo()
	funcs, err := g.ExtractFunctions(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "return nil" on its own identifies nothing; the whole function
	// drops out.
	if len(funcs) != 0 {
		t.Fatalf("funcs = %+v, want none", funcs)
	}
}

func TestExtractFunctions_SkipsBodylessDecls(t *testing.T) {
	src := `package sample

func External() int
`
	g := NewGo()
	funcs, err := g.ExtractFunctions(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(funcs) != 0 {
		t.Fatalf("funcs = %+v, want none", funcs)
	}
}

func TestExtractFunctions_ParseError(t *testing.T) {
	g := NewGo()
	if _, err := g.ExtractFunctions("func broken("); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestExtractNames(t *testing.T) {
	g := NewGo()
	names, err := g.ExtractNames(sampleSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Counter", "Counter.Add", "Counter.Value", "Sum", "Classify"}
	got := make(map[string]bool)
	for _, n := range names {
		got[n] = true
	}
	for _, w := range want {
		if !got[w] {
			t.Fatalf("names = %v missing %q", names, w)
		}
	}
}

func TestIgnoreDir(t *testing.T) {
	g := NewGo()
	tests := []struct {
		name string
		want bool
	}{
		{"vendor", true},
		{"testdata", true},
		{"node_modules", true},
		{".git", true},
		{"internal", false},
		{"cmd", false},
	}
	for _, tt := range tests {
		if got := g.IgnoreDir(tt.name); got != tt.want {
			t.Fatalf("IgnoreDir(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIgnoreSuffix(t *testing.T) {
	g := NewGo()
	if !g.IgnoreSuffix("tool.exe") {
		t.Fatal("expected .exe to be ignored")
	}
	if g.IgnoreSuffix("main.go") {
		t.Fatal("main.go should not be ignored")
	}
}
