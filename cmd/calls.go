package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Inspect backend request/response calls",
}

var callsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent backend calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		calls, err := s.ListCalls(ctx, limit)
		if err != nil {
			return fmt.Errorf("list calls: %w", err)
		}

		if len(calls) == 0 {
			fmt.Println("No backend calls found.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-10s  %-28s  %-7s  %s\n",
			"ID", "Timestamp", "Backend", "Model", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 80))

		for _, c := range calls {
			ok := "✓"
			if !c.Success {
				ok = "✗"
			}
			model := c.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-5d  %-19s  %-10s  %-28s  %-7d  %s\n",
				c.ID,
				c.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				c.Backend,
				model,
				c.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var callsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full prompt and response for a backend call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		c, err := s.GetCall(ctx, id)
		if err != nil {
			return fmt.Errorf("get call: %w", err)
		}
		if c == nil {
			return fmt.Errorf("call %d not found", id)
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("ID:        %d\n", c.ID)
		fmt.Printf("Time:      %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Backend:   %s\n", c.Backend)
		fmt.Printf("Model:     %s\n", c.Model)
		fmt.Printf("Latency:   %dms\n", c.LatencyMs)
		fmt.Printf("Success:   %v\n", c.Success)
		if c.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", c.ErrorMessage)
		}

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("PROMPT")
		fmt.Println(sep)
		fmt.Println(c.Prompt)

		fmt.Println(sep)
		fmt.Println("RESPONSE")
		fmt.Println(sep)
		if c.Response != "" {
			fmt.Println(c.Response)
		} else {
			fmt.Println("(empty)")
		}
		return nil
	},
}

func init() {
	callsListCmd.Flags().Int("limit", 20, "Maximum calls to list")
	callsCmd.AddCommand(callsListCmd)
	callsCmd.AddCommand(callsViewCmd)
}
