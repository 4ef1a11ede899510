package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/whence/internal/config"
	"github.com/abhisek/whence/internal/score"
	"github.com/abhisek/whence/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "whence [paths...]",
	Short: "Score code organization by guessability",
	Long: `Whence measures how well code is organized by asking a language model
where pieces of it belong: which function a statement came from, which
file a name came from, which folder a file came from. Cohesive,
well-named code is easy to place; code with poor boundaries is not.

Scores are chance-adjusted: 0 means the judge did no better than random
guessing, 1 means it placed everything, negative means worse than random.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WHENCE_DB env var)")

	rootCmd.Flags().String("check", "line-to-function", "Check to run: line-to-function, name-to-file, file-to-folder")
	rootCmd.Flags().String("backend", "", "Judgment backend (default: auto-discover from environment)")
	rootCmd.Flags().String("model", "", "Model override for the selected backend")
	rootCmd.Flags().IntP("max-items", "n", 0, "Max items to sample per target (limits API calls)")
	rootCmd.Flags().IntP("workers", "w", score.DefaultWorkers, "Number of parallel backend calls")
	rootCmd.Flags().Int64("seed", 0, "Shuffle seed for reproducible sampling (0 = random)")
	rootCmd.Flags().Bool("json", false, "Output results as JSON")
	rootCmd.Flags().BoolP("verbose", "v", false, "Print each judgment as it completes")
	rootCmd.Flags().Bool("progress", false, "Show a live progress display")
	rootCmd.Flags().Bool("no-save", false, "Don't record this run in history")

	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(callsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then WHENCE_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command, fileCfg config.File) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if fileCfg.DBPath != "" {
		return fileCfg.DBPath, store.EnsureDir(fileCfg.DBPath)
	}
	return store.DefaultDBPath()
}
