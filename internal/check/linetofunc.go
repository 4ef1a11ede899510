// Package check defines the classification questions whence can ask: which
// function a statement came from, which file a name came from, which folder
// a file came from. Each check turns a target into classification tasks and
// knows how to phrase its question as a prompt.
package check

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/whence/internal/lang"
	"github.com/abhisek/whence/internal/score"
)

const lineToFunctionPrompt = `You are a code analysis tool. You will be given:
1. A list of function names from a source module.
2. A single statement of code pulled from one of those functions.

Your task: guess which function the statement most likely belongs to.

Respond with ONLY a JSON object: {"guess": "<function_name>", "confidence": <0.0-1.0>}
No other text.

Function names in this module:
%s

Statement:
` + "```" + `
%s
` + "```" + `

Which function does this statement belong to?`

// LineToFunction scores how identifiable each statement is within its
// function. The target is a source file; every function name in the file
// is a candidate for every statement.
type LineToFunction struct {
	language lang.Language
}

// NewLineToFunction creates the check for the given language.
func NewLineToFunction(language lang.Language) *LineToFunction {
	return &LineToFunction{language: language}
}

func (*LineToFunction) Name() string { return "line-to-function" }

// Extract reads and parses the target file and emits one task per
// statement, with all function names as candidates.
func (c *LineToFunction) Extract(target string) ([]score.ClassificationTask, error) {
	source, err := os.ReadFile(target)
	if err != nil {
		return nil, err
	}
	functions, err := c.language.ExtractFunctions(string(source))
	if err != nil {
		return nil, fmt.Errorf("extract functions: %w", err)
	}
	if len(functions) < 2 {
		return nil, nil
	}

	names := make([]string, len(functions))
	for i, f := range functions {
		names[i] = f.Name
	}

	var tasks []score.ClassificationTask
	for _, f := range functions {
		for _, stmt := range f.Statements {
			tasks = append(tasks, score.ClassificationTask{
				Item:       stmt,
				Actual:     f.Name,
				Candidates: names,
			})
		}
	}
	return tasks, nil
}

func (*LineToFunction) BuildPrompt(candidates []string, item string) string {
	return fmt.Sprintf(lineToFunctionPrompt, bulletList(candidates), item)
}

func bulletList(items []string) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  - %s", it)
	}
	return b.String()
}
