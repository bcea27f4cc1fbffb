// Package materialize writes an api.Tree onto a billy.Filesystem.
//
// Directories are created with mkdir -p semantics and files are truncated
// and overwritten. The walk is depth-first and stops at the first error;
// whatever was written before it stays on disk.
package materialize

import (
	"io"
	"log/slog"
	"os"

	billy "github.com/go-git/go-billy/v5"

	"github.com/agentic-research/sprout/api"
)

const (
	DefaultDirPerm  os.FileMode = 0o755
	DefaultFilePerm os.FileMode = 0o644
)

// TransformFunc rewrites leaf contents before they are written.
type TransformFunc func(path string, content []byte) []byte

// Options tunes a Materializer. Zero values pick the defaults.
type Options struct {
	DirPerm   os.FileMode
	FilePerm  os.FileMode
	Transform TransformFunc
	Logger    *slog.Logger
}

// Materializer creates layouts on a filesystem.
type Materializer struct {
	fs   billy.Filesystem
	opts Options
}

// New returns a Materializer writing to fs.
func New(fs billy.Filesystem, opts Options) *Materializer {
	if opts.DirPerm == 0 {
		opts.DirPerm = DefaultDirPerm
	}
	if opts.FilePerm == 0 {
		opts.FilePerm = DefaultFilePerm
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Materializer{fs: fs, opts: opts}
}

// Materialize ensures base exists and then creates every entry of t below it.
func (m *Materializer) Materialize(base string, t *api.Tree) error {
	if err := m.mkdir(base); err != nil {
		return err
	}
	return m.materialize(base, t)
}

func (m *Materializer) materialize(base string, t *api.Tree) error {
	if t == nil {
		return nil
	}
	for _, e := range t.Entries {
		p := m.fs.Join(base, e.Name)
		if e.IsDir() {
			if err := m.mkdir(p); err != nil {
				return err
			}
			if err := m.materialize(p, e.Tree); err != nil {
				return err
			}
			continue
		}
		if err := m.writeFile(p, e.Content); err != nil {
			return err
		}
	}
	return nil
}

func (m *Materializer) mkdir(p string) error {
	if err := m.fs.MkdirAll(p, m.opts.DirPerm); err != nil {
		return &PathCreationError{Path: p, Err: err}
	}
	m.opts.Logger.Debug("mkdir", slog.String("path", p))
	return nil
}

// writeFile truncates p and writes content. The handle is closed on every
// path; a failed close is reported when the write itself succeeded.
func (m *Materializer) writeFile(p, content string) (err error) {
	data := []byte(content)
	if m.opts.Transform != nil {
		data = m.opts.Transform(p, data)
	}

	f, err := m.fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, m.opts.FilePerm)
	if err != nil {
		return &FileWriteError{Path: p, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileWriteError{Path: p, Err: cerr}
		}
	}()

	if _, werr := f.Write(data); werr != nil {
		return &FileWriteError{Path: p, Err: werr}
	}
	m.opts.Logger.Debug("write", slog.String("path", p), slog.Int("bytes", len(data)))
	return nil
}
