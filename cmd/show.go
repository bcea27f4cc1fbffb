package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/sprout/internal/materialize"
	"github.com/agentic-research/sprout/internal/treeprint"
)

func newShowCmd(lf *layoutFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a layout without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, name, err := loadTree(lf)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				b, err := json.MarshalIndent(tree, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			}

			mem := memfs.New()
			if err := materialize.New(mem, materialize.Options{Logger: newLogger(cmd, lf.verbose)}).Materialize(name, tree); err != nil {
				return err
			}
			return treeprint.Fprint(out, mem, name)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the layout as nested JSON")
	return cmd
}
