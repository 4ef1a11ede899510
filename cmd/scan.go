package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/modfile"

	"github.com/abhisek/whence/internal/check"
	"github.com/abhisek/whence/internal/config"
	"github.com/abhisek/whence/internal/lang"
	"github.com/abhisek/whence/internal/llm"
	"github.com/abhisek/whence/internal/report"
	"github.com/abhisek/whence/internal/score"
	"github.com/abhisek/whence/internal/store"
	"github.com/abhisek/whence/internal/ui"
)

// target is one unit of scoring: a file or folder, labeled for output,
// weighted by how much code it holds.
type target struct {
	Path   string
	Label  string
	Weight int
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fileCfg, err := config.Load()
	if err != nil {
		return err
	}

	cfg := llm.ApplyEnv(fileCfg.Apply(llm.DefaultConfig()))
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Backend = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.SetModel(v)
	}
	if cfg.Backend == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
			if v, _ := cmd.Flags().GetString("model"); v != "" {
				cfg.SetModel(v)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	checkName, _ := cmd.Flags().GetString("check")
	maxItems, _ := cmd.Flags().GetInt("max-items")
	workers, _ := cmd.Flags().GetInt("workers")
	seed, _ := cmd.Flags().GetInt64("seed")
	asJSON, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")
	showProgress, _ := cmd.Flags().GetBool("progress")
	noSave, _ := cmd.Flags().GetBool("no-save")

	if workers <= 0 {
		workers = score.DefaultWorkers
	}
	if maxItems == 0 && fileCfg.MaxItems > 0 {
		maxItems = fileCfg.MaxItems
	}
	if fileCfg.Workers > 0 && !cmd.Flags().Changed("workers") {
		workers = fileCfg.Workers
	}

	language := lang.NewGo()
	chk, err := buildCheck(checkName, language)
	if err != nil {
		return err
	}

	targets, err := collectTargets(checkName, args, language)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no scorable %s targets under %s", checkName, strings.Join(args, ", "))
	}

	var st *store.Store
	var callLog llm.CallLog
	if !noSave {
		dbPath, err := resolveDBPath(cmd, fileCfg)
		if err != nil {
			return err
		}
		st, err = store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		callLog = st
	}

	backend, err := llm.NewBackend(ctx, cfg, callLog)
	if err != nil {
		return err
	}

	var prog *ui.Progress
	if showProgress && !asJSON && !verbose {
		prog = ui.StartProgress()
		defer prog.Stop()
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	var summary score.Summary
	for _, tgt := range targets {
		opts := score.Options{
			MaxItems: maxItems,
			Workers:  workers,
			Seed:     seed,
		}
		if verbose {
			opts.OnResult = func(r score.GuessResult, done, total int) {
				mark := "✗"
				if r.Correct {
					mark = "✓"
				}
				fmt.Fprintf(os.Stderr, "[%d/%d] %s %s  actual=%s guess=%s conf=%.2f\n",
					done, total, mark, r.Item, r.Actual, r.Guessed, r.Confidence)
			}
		}
		if prog != nil {
			prog.Target(tgt.Label, 0)
			opts.OnResult = func(r score.GuessResult, done, total int) {
				prog.Result(r, done, total)
			}
		}

		res, err := score.Score(ctx, chk, backend, tgt.Path, opts)
		if err != nil {
			var nc *score.NoCandidatesError
			if errors.As(err, &nc) {
				// A target that can't be decomposed into at least two
				// categories still drags the overall score down by its
				// weight instead of silently vanishing from the average.
				summary.Add(tgt.Label, score.ZeroResult(checkName, tgt.Weight))
				if !asJSON {
					fmt.Fprintf(out, "%s: scored 0 (%v)\n", tgt.Label, err)
				}
				continue
			}
			return fmt.Errorf("scoring %s: %w", tgt.Label, err)
		}
		res.Weight = tgt.Weight
		summary.Add(tgt.Label, res)

		if !asJSON {
			fmt.Fprintln(out, report.FormatText(res, tgt.Label))
		}

		if st != nil {
			if _, err := st.SaveRun(ctx, store.RunRecord{
				Target:        tgt.Label,
				Check:         res.Check,
				Backend:       cfg.Backend,
				Model:         backend.ModelID(),
				Items:         res.Total(),
				Failed:        res.Failed,
				RawScore:      res.RawScore,
				AdjustedScore: res.AdjustedScore,
				ChanceLevel:   res.ChanceLevel,
				NumCategories: res.NumCategories,
				Weight:        res.Weight,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save run: %v\n", err)
			}
		}
	}

	if prog != nil {
		prog.Stop()
	}

	if asJSON {
		s, err := report.FormatJSON(&summary)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	}

	if summary.Len() > 1 {
		fmt.Fprintln(out, report.FormatSummary(&summary))
	}
	return nil
}

func buildCheck(name string, language lang.Language) (score.Check, error) {
	switch name {
	case "line-to-function":
		return check.NewLineToFunction(language), nil
	case "name-to-file":
		return check.NewNameToFile(language), nil
	case "file-to-folder":
		return check.NewFileToFolder(language), nil
	default:
		return nil, fmt.Errorf("unknown check: %q (want line-to-function, name-to-file, or file-to-folder)", name)
	}
}

// collectTargets expands the command-line paths into the units the chosen
// check scores: source files for line-to-function, folders for
// name-to-file, whole trees for file-to-folder.
func collectTargets(checkName string, args []string, language lang.Language) ([]target, error) {
	var targets []target
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		switch checkName {
		case "line-to-function":
			if !info.IsDir() {
				w, err := fileWeight(arg)
				if err != nil {
					return nil, err
				}
				targets = append(targets, target{Path: arg, Label: arg, Weight: w})
				continue
			}
			files, err := sourceFiles(arg, language)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				w, err := fileWeight(f)
				if err != nil {
					return nil, err
				}
				targets = append(targets, target{Path: f, Label: f, Weight: w})
			}

		case "name-to-file":
			if !info.IsDir() {
				return nil, fmt.Errorf("%s scores folders, but %s is a file", checkName, arg)
			}
			dirs, err := sourceDirs(arg, language)
			if err != nil {
				return nil, err
			}
			for _, d := range dirs {
				w, err := dirWeight(d, language)
				if err != nil {
					return nil, err
				}
				targets = append(targets, target{Path: d, Label: labelDir(d), Weight: w})
			}

		case "file-to-folder":
			if !info.IsDir() {
				return nil, fmt.Errorf("%s scores folders, but %s is a file", checkName, arg)
			}
			w, err := treeWeight(arg, language)
			if err != nil {
				return nil, err
			}
			targets = append(targets, target{Path: arg, Label: labelDir(arg), Weight: w})
		}
	}
	return targets, nil
}

// sourceFiles lists source files under root recursively, skipping
// directories the language ignores.
func sourceFiles(root string, language lang.Language) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && language.IgnoreDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if hasSuffix(d.Name(), language.Suffixes()) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// sourceDirs lists root and every non-ignored subdirectory that directly
// contains at least one source file.
func sourceDirs(root string, language lang.Language) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && language.IgnoreDir(d.Name()) {
			return filepath.SkipDir
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.IsDir() && hasSuffix(e.Name(), language.Suffixes()) {
				dirs = append(dirs, path)
				break
			}
		}
		return nil
	})
	return dirs, err
}

func hasSuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// fileWeight counts non-blank lines. Weighting by code volume keeps a
// ten-line file from counting the same as a thousand-line one in the
// cross-target average.
func fileWeight(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n, nil
}

// dirWeight sums the weights of source files directly in dir.
func dirWeight(dir string, language lang.Language) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		if e.IsDir() || !hasSuffix(e.Name(), language.Suffixes()) {
			continue
		}
		w, err := fileWeight(filepath.Join(dir, e.Name()))
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}

// treeWeight sums the weights of all source files under root.
func treeWeight(root string, language lang.Language) (int, error) {
	files, err := sourceFiles(root, language)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, f := range files {
		w, err := fileWeight(f)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}

// labelDir labels a folder target, appending the module path when the
// folder is a Go module root.
func labelDir(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return dir
	}
	if path := modfile.ModulePath(data); path != "" {
		return fmt.Sprintf("%s (%s)", dir, path)
	}
	return dir
}
