package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/sprout/internal/preset"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range preset.Names() {
				tree, _ := preset.Lookup(name)
				dirs, files := tree.Count()
				marker := ""
				if name == preset.Default {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s: %d directories, %d files\n", name, marker, dirs, files)
			}
			return nil
		},
	}
}
