package check

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abhisek/whence/internal/lang"
	"github.com/abhisek/whence/internal/score"
)

const nameToFilePrompt = `You are a code analysis tool. You will be given:
1. A list of file names from a project.
2. A single function or type name from one of those files.

Your task: guess which file the name most likely belongs to.

Respond with ONLY a JSON object: {"guess": "<filename>", "confidence": <0.0-1.0>}
No other text.

Files in this directory:
%s

Name:
  %s

Which file does this name belong to?`

// NameToFile scores how identifiable each top-level declaration name is
// within its file. The target is a directory; every source file in it is a
// candidate for every name.
type NameToFile struct {
	language lang.Language
}

// NewNameToFile creates the check for the given language.
func NewNameToFile(language lang.Language) *NameToFile {
	return &NameToFile{language: language}
}

func (*NameToFile) Name() string { return "name-to-file" }

// Extract reads every source file directly under the target directory and
// emits one task per declared name, with all file names as candidates.
func (c *NameToFile) Extract(target string) ([]score.ClassificationTask, error) {
	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	fileNames := make(map[string][]string)
	var order []string
	for _, entry := range entries {
		if entry.IsDir() || !c.sourceFile(entry.Name()) {
			continue
		}
		src, err := os.ReadFile(filepath.Join(target, entry.Name()))
		if err != nil {
			continue
		}
		names, err := c.language.ExtractNames(string(src))
		if err != nil || len(names) == 0 {
			continue
		}
		fileNames[entry.Name()] = names
		order = append(order, entry.Name())
	}

	if len(fileNames) < 2 {
		return nil, nil
	}

	sort.Strings(order)
	var tasks []score.ClassificationTask
	for _, file := range order {
		for _, name := range fileNames[file] {
			tasks = append(tasks, score.ClassificationTask{
				Item:       name,
				Actual:     file,
				Candidates: order,
			})
		}
	}
	return tasks, nil
}

func (c *NameToFile) sourceFile(name string) bool {
	for _, suffix := range c.language.Suffixes() {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func (*NameToFile) BuildPrompt(candidates []string, item string) string {
	return fmt.Sprintf(nameToFilePrompt, bulletList(candidates), item)
}
