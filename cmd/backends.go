package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/whence/internal/llm"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available judgment backends",
	Run: func(cmd *cobra.Command, args []string) {
		selected := ""
		if cfg, ok := llm.DiscoverConfig(); ok {
			selected = cfg.Backend
		}
		if v := llm.ApplyEnv(llm.DefaultConfig()); v.Backend != "" {
			selected = v.Backend
		}

		for _, name := range llm.Names() {
			marker := " "
			if name == selected {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		if selected == "" {
			fmt.Println("\nNo backend configured. Set an API key (e.g. ANTHROPIC_API_KEY) or WHENCE_BACKEND.")
		}
	},
}
