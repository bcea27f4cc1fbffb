// Package treeprint renders a directory hierarchy in the style of tree(1).
package treeprint

import (
	"fmt"
	"io"
	"os"
	"sort"

	billy "github.com/go-git/go-billy/v5"
)

const (
	connectorMid   = "├───"
	connectorLast  = "└───"
	indentContinue = "│\t"
	indentEmpty    = "\t"
)

// Fprint writes root followed by every descendant on fs.
// Siblings are sorted by name; files carry their size.
func Fprint(w io.Writer, fs billy.Filesystem, root string) error {
	if _, err := fmt.Fprintln(w, root); err != nil {
		return err
	}
	return printDir(w, fs, root, "")
}

func printDir(w io.Writer, fs billy.Filesystem, dir, prefix string) error {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for i, e := range entries {
		last := i == len(entries)-1
		connector, indent := connectorMid, indentContinue
		if last {
			connector, indent = connectorLast, indentEmpty
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, connector, formatName(e)); err != nil {
			return err
		}
		if e.IsDir() {
			if err := printDir(w, fs, fs.Join(dir, e.Name()), prefix+indent); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatName(fi os.FileInfo) string {
	if fi.IsDir() {
		return fi.Name()
	}
	if fi.Size() == 0 {
		return fi.Name() + " (empty)"
	}
	return fmt.Sprintf("%s (%db)", fi.Name(), fi.Size())
}
