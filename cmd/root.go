package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/sprout/api"
	"github.com/agentic-research/sprout/internal/layout"
	"github.com/agentic-research/sprout/internal/materialize"
	"github.com/agentic-research/sprout/internal/preset"
	"github.com/agentic-research/sprout/internal/tidy"
	"github.com/agentic-research/sprout/internal/treeprint"
)

// layoutFlags select the tree description. They are shared by every command.
type layoutFlags struct {
	layoutPath string
	selector   string
	presetName string
	verbose    bool
}

type rootFlags struct {
	layoutFlags
	gofumpt  bool
	dryRun   bool
	dirMode  string
	fileMode string
}

// NewRootCmd builds the sprout command tree.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "sprout [target]",
		Short: "Sprout: materialize a directory layout onto disk",
		Long: `Sprout creates a directory tree under [target] from a layout description.
Branches become directories (mkdir -p) and leaves become files holding their
literal text. Existing files named by the layout are overwritten; nothing
else under [target] is touched.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterialize(cmd, f, args[0])
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.layoutPath, "layout", "l", "", "Path to a layout description (.json, .yaml, .yml, .hcl)")
	pf.StringVar(&f.selector, "select", "", "JSONPath selecting a sub-layout, e.g. $.packages.core")
	pf.StringVarP(&f.presetName, "preset", "p", "", fmt.Sprintf("Built-in layout to use when --layout is not set (default %q)", preset.Default))
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Log every directory and file")

	fl := root.Flags()
	fl.BoolVar(&f.gofumpt, "gofumpt", false, "Format .go leaves with gofumpt before writing")
	fl.BoolVarP(&f.dryRun, "dry-run", "n", false, "Build the layout in memory and print it instead of writing to disk")
	fl.StringVar(&f.dirMode, "dir-mode", "0755", "Permissions for created directories (octal)")
	fl.StringVar(&f.fileMode, "file-mode", "0644", "Permissions for written files (octal)")

	root.AddCommand(newShowCmd(&f.layoutFlags))
	root.AddCommand(newPresetsCmd())
	root.AddCommand(newPreviewCmd(&f.layoutFlags))
	return root
}

func runMaterialize(cmd *cobra.Command, f *rootFlags, target string) error {
	tree, _, err := loadTree(&f.layoutFlags)
	if err != nil {
		return err
	}

	dirPerm, err := parseMode(f.dirMode)
	if err != nil {
		return fmt.Errorf("invalid --dir-mode: %w", err)
	}
	filePerm, err := parseMode(f.fileMode)
	if err != nil {
		return fmt.Errorf("invalid --file-mode: %w", err)
	}

	opts := materialize.Options{
		DirPerm:  dirPerm,
		FilePerm: filePerm,
		Logger:   newLogger(cmd, f.verbose),
	}
	if f.gofumpt {
		opts.Transform = tidy.GoBuffer
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve target: %w", err)
	}
	base := filepath.Base(abs)
	dirs, files := tree.Count()
	out := cmd.OutOrStdout()

	if f.dryRun {
		mem := memfs.New()
		if err := materialize.New(mem, opts).Materialize(base, tree); err != nil {
			return err
		}
		fmt.Fprintf(out, "Dry run: would create %d directories and %d files under %s\n", dirs, files, abs)
		return treeprint.Fprint(out, mem, base)
	}

	// Root the filesystem at the target's parent so the target itself is
	// created by the materializer.
	fsys := osfs.New(filepath.Dir(abs))
	if err := materialize.New(fsys, opts).Materialize(base, tree); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %d directories and %d files under %s\n", dirs, files, abs)
	return nil
}

// loadTree resolves the layout flags into a tree and a short display name.
func loadTree(f *layoutFlags) (*api.Tree, string, error) {
	if f.layoutPath != "" {
		if f.presetName != "" {
			return nil, "", fmt.Errorf("--layout and --preset are mutually exclusive")
		}
		tree, err := layout.Load(f.layoutPath, f.selector)
		if err != nil {
			return nil, "", err
		}
		return tree, displayName(f.layoutPath), nil
	}

	name := f.presetName
	if name == "" {
		name = preset.Default
	}
	tree, ok := preset.Lookup(name)
	if !ok {
		return nil, "", fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(preset.Names(), ", "))
	}
	if f.selector == "" {
		return tree, name, nil
	}

	sub, err := layout.Select(tree.Value(), f.selector)
	if err != nil {
		return nil, "", err
	}
	tree, err = api.FromValue(sub)
	if err != nil {
		return nil, "", err
	}
	return tree, name, nil
}

// fallbackName labels layouts whose file name has no stem, such as ".json".
const fallbackName = "layout"

// displayName is the layout file's base name without its extension.
func displayName(layoutPath string) string {
	name := strings.TrimSuffix(filepath.Base(layoutPath), filepath.Ext(layoutPath))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallbackName
	}
	return name
}

// parseMode reads an octal permission string such as 0755, 755 or 0o755.
func parseMode(s string) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	if s == "" {
		return 0, fmt.Errorf("empty mode")
	}
	u, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if u > 0o777 {
		return 0, fmt.Errorf("mode %#o has bits outside 0777", u)
	}
	// materialize treats a zero mode as "use the default".
	if u == 0 {
		return 0, fmt.Errorf("mode must not be 0")
	}
	return os.FileMode(u), nil
}

func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
