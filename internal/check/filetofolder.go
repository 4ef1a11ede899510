package check

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/abhisek/whence/internal/lang"
	"github.com/abhisek/whence/internal/score"
)

const fileToFolderPrompt = `You are a code analysis tool. You will be given:
1. A list of folder names from a project directory tree.
2. A single file or subfolder name from one of those folders.

Your task: guess which folder the item most likely belongs to.

Respond with ONLY a JSON object: {"guess": "<folder_name>", "confidence": <0.0-1.0>}
No other text.

Folders:
%s

Item:
  %s

Which folder does this item belong to?`

// FileToFolder scores how identifiable each file or subfolder is within
// its parent folder. The target is a directory tree root.
//
// Candidates are deliberately not the full set of folders in the tree:
// each item is classified among its parent's local neighborhood — the
// parent itself, the parent's sibling folders, and the grandparent. The
// global tree would conflate local organization quality with structure the
// item has nothing to do with, and the small neighborhood keeps the
// chance level per task meaningful.
type FileToFolder struct {
	language lang.Language
}

// NewFileToFolder creates the check for the given language.
func NewFileToFolder(language lang.Language) *FileToFolder {
	return &FileToFolder{language: language}
}

func (*FileToFolder) Name() string { return "file-to-folder" }

// Extract walks the tree under target and emits one task per child of
// every folder that has at least 2 non-ignored children and a neighborhood
// of at least 2 folders.
func (c *FileToFolder) Extract(target string) ([]score.ClassificationTask, error) {
	root, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat target: %w", err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	folderChildren := make(map[string][]string)
	var folders []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && c.ignore(d.Name()) {
			return filepath.SkipDir
		}
		children, err := c.listChildren(path)
		if err != nil {
			return err
		}
		if len(children) >= 2 {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			folderChildren[rel] = children
			folders = append(folders, rel)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(folders)
	var tasks []score.ClassificationTask
	for _, folder := range folders {
		candidates, err := c.neighborhood(folder, root)
		if err != nil {
			return nil, err
		}
		if len(candidates) < 2 {
			continue
		}
		for _, child := range folderChildren[folder] {
			tasks = append(tasks, score.ClassificationTask{
				Item:       child,
				Actual:     folder,
				Candidates: candidates,
			})
		}
	}
	return tasks, nil
}

// neighborhood returns the candidate folders local to folder: its sibling
// folders (itself included), and its parent. The root "." has neither, so
// its neighborhood is the root plus its direct child folders.
func (c *FileToFolder) neighborhood(folder string, root string) ([]string, error) {
	set := make(map[string]struct{})

	if folder == "." {
		set["."] = struct{}{}
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() && !c.ignore(e.Name()) {
				set[e.Name()] = struct{}{}
			}
		}
		return sortedKeys(set), nil
	}

	parent := filepath.Dir(folder)
	parentAbs := root
	if parent != "." {
		parentAbs = filepath.Join(root, parent)
	}

	entries, err := os.ReadDir(parentAbs)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() && !c.ignore(e.Name()) {
			set[filepath.Join(parent, e.Name())] = struct{}{}
		}
	}
	set[parent] = struct{}{}

	return sortedKeys(set), nil
}

// listChildren returns the non-ignored entry names of a folder.
func (c *FileToFolder) listChildren(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var children []string
	for _, e := range entries {
		if c.ignore(e.Name()) {
			continue
		}
		children = append(children, e.Name())
	}
	return children, nil
}

func (c *FileToFolder) ignore(name string) bool {
	return c.language.IgnoreDir(name) || c.language.IgnoreSuffix(name)
}

func (*FileToFolder) BuildPrompt(candidates []string, item string) string {
	return fmt.Sprintf(fileToFolderPrompt, bulletList(candidates), item)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
