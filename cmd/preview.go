package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/sprout/internal/materialize"
	"github.com/agentic-research/sprout/internal/nfsmount"
)

const previewRoot = "preview"

func newPreviewCmd(lf *layoutFlags) *cobra.Command {
	var noMount bool

	cmd := &cobra.Command{
		Use:   "preview [mountpoint]",
		Short: "Serve a layout read-only over NFS for browsing before creating it",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !noMount && len(args) == 0 {
				return fmt.Errorf("a mountpoint is required unless --no-mount is set")
			}

			tree, _, err := loadTree(lf)
			if err != nil {
				return err
			}

			mem := memfs.New()
			if err := materialize.New(mem, materialize.Options{Logger: newLogger(cmd, lf.verbose)}).Materialize(previewRoot, tree); err != nil {
				return err
			}
			exported, err := mem.Chroot(previewRoot)
			if err != nil {
				return fmt.Errorf("chroot preview: %w", err)
			}

			srv, err := nfsmount.NewServer(exported)
			if err != nil {
				return err
			}
			defer func() { _ = srv.Close() }()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "NFS preview listening on 127.0.0.1:%d\n", srv.Port())

			if !noMount {
				mountPoint := args[0]
				if err := nfsmount.Mount(srv.Port(), mountPoint); err != nil {
					return err
				}
				defer func() {
					if err := nfsmount.Unmount(mountPoint); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "unmount %s: %v\n", mountPoint, err)
					}
				}()
				fmt.Fprintf(out, "Mounted preview at %s (Ctrl-C to stop)\n", mountPoint)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&noMount, "no-mount", false, "Only serve; do not call mount")
	return cmd
}
