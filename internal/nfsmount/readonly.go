package nfsmount

import (
	"errors"
	"os"
	"time"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/helper/chroot"
)

var errReadOnly = errors.New("read-only filesystem")

const writeFlags = os.O_WRONLY | os.O_RDWR | os.O_CREATE | os.O_TRUNC | os.O_APPEND

// ReadOnlyFS exposes a billy.Filesystem with every mutating call refused.
// Reported modes have their write bits cleared.
type ReadOnlyFS struct {
	fs billy.Filesystem
}

// ReadOnly wraps fs.
func ReadOnly(fs billy.Filesystem) *ReadOnlyFS {
	return &ReadOnlyFS{fs: fs}
}

// --- billy.Basic ---

func (r *ReadOnlyFS) Create(filename string) (billy.File, error) {
	return nil, &os.PathError{Op: "create", Path: filename, Err: errReadOnly}
}

func (r *ReadOnlyFS) Open(filename string) (billy.File, error) {
	return r.OpenFile(filename, os.O_RDONLY, 0)
}

func (r *ReadOnlyFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&writeFlags != 0 {
		return nil, &os.PathError{Op: "open", Path: filename, Err: errReadOnly}
	}
	f, err := r.fs.OpenFile(filename, flag, perm)
	if err != nil {
		return nil, err
	}
	return &readOnlyFile{File: f}, nil
}

func (r *ReadOnlyFS) Stat(filename string) (os.FileInfo, error) {
	fi, err := r.fs.Stat(filename)
	if err != nil {
		return nil, err
	}
	return readOnlyInfo{fi}, nil
}

func (r *ReadOnlyFS) Rename(oldpath, newpath string) error {
	return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: errReadOnly}
}

func (r *ReadOnlyFS) Remove(filename string) error {
	return &os.PathError{Op: "remove", Path: filename, Err: errReadOnly}
}

func (r *ReadOnlyFS) Join(elem ...string) string {
	return r.fs.Join(elem...)
}

// --- billy.TempFile ---

func (r *ReadOnlyFS) TempFile(dir, prefix string) (billy.File, error) {
	return nil, &os.PathError{Op: "tempfile", Path: dir, Err: errReadOnly}
}

// --- billy.Dir ---

func (r *ReadOnlyFS) ReadDir(path string) ([]os.FileInfo, error) {
	infos, err := r.fs.ReadDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]os.FileInfo, len(infos))
	for i, fi := range infos {
		out[i] = readOnlyInfo{fi}
	}
	return out, nil
}

func (r *ReadOnlyFS) MkdirAll(filename string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: filename, Err: errReadOnly}
}

// --- billy.Symlink ---

func (r *ReadOnlyFS) Lstat(filename string) (os.FileInfo, error) {
	fi, err := r.fs.Lstat(filename)
	if err != nil {
		return nil, err
	}
	return readOnlyInfo{fi}, nil
}

func (r *ReadOnlyFS) Symlink(target, link string) error {
	return &os.LinkError{Op: "symlink", Old: target, New: link, Err: errReadOnly}
}

func (r *ReadOnlyFS) Readlink(link string) (string, error) {
	return r.fs.Readlink(link)
}

// --- billy.Change ---

func (r *ReadOnlyFS) Chmod(name string, mode os.FileMode) error {
	return &os.PathError{Op: "chmod", Path: name, Err: errReadOnly}
}

func (r *ReadOnlyFS) Lchown(name string, uid, gid int) error {
	return &os.PathError{Op: "lchown", Path: name, Err: errReadOnly}
}

func (r *ReadOnlyFS) Chown(name string, uid, gid int) error {
	return &os.PathError{Op: "chown", Path: name, Err: errReadOnly}
}

func (r *ReadOnlyFS) Chtimes(name string, atime, mtime time.Time) error {
	return &os.PathError{Op: "chtimes", Path: name, Err: errReadOnly}
}

// --- billy.Chroot ---

func (r *ReadOnlyFS) Chroot(path string) (billy.Filesystem, error) {
	return chroot.New(r, path), nil
}

func (r *ReadOnlyFS) Root() string {
	return r.fs.Root()
}

// --- billy.Capable ---

// Capabilities omits WriteCapability so go-nfs answers NFS3ERR_ROFS up front.
func (r *ReadOnlyFS) Capabilities() billy.Capability {
	return billy.ReadCapability | billy.SeekCapability
}

// readOnlyFile refuses writes on a handle opened for reading.
type readOnlyFile struct {
	billy.File
}

func (f *readOnlyFile) Write(p []byte) (int, error) { return 0, errReadOnly }

func (f *readOnlyFile) WriteAt(p []byte, off int64) (int, error) { return 0, errReadOnly }

func (f *readOnlyFile) Truncate(size int64) error { return errReadOnly }

type readOnlyInfo struct {
	os.FileInfo
}

func (fi readOnlyInfo) Mode() os.FileMode { return fi.FileInfo.Mode() &^ 0o222 }

var (
	_ billy.Filesystem = (*ReadOnlyFS)(nil)
	_ billy.Change     = (*ReadOnlyFS)(nil)
	_ billy.Capable    = (*ReadOnlyFS)(nil)
)
