package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/whence/internal/config"
	"github.com/abhisek/whence/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent scoring runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		runs, err := s.ListRuns(ctx, limit)
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		// Header.
		fmt.Printf("%-19s  %-16s  %-10s  %-7s  %-6s  %-6s  %s\n",
			"Timestamp", "Check", "Backend", "Score", "Raw", "Items", "Target")
		fmt.Println(strings.Repeat("─", 100))

		for _, r := range runs {
			target := r.Target
			if len(target) > 40 {
				target = target[:40]
			}
			fmt.Printf("%-19s  %-16s  %-10s  %+-7.2f  %-6.2f  %-6d  %s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.Check,
				r.Backend,
				r.AdjustedScore,
				r.RawScore,
				r.Items,
				target,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum runs to list")
}

// openStore resolves the database path from flags, config file, and
// environment, then opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	fileCfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, fileCfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
