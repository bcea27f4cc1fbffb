package nfsmount

import (
	"errors"
	"io"
	"os"
	"testing"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadOnlyFixture(t *testing.T) (billy.Filesystem, *ReadOnlyFS) {
	t.Helper()
	backing := memfs.New()
	require.NoError(t, util.WriteFile(backing, "lib/main.dart", []byte("// entry\n"), 0o644))
	return backing, ReadOnly(backing)
}

func TestReadOnly_RefusesMutation(t *testing.T) {
	backing, ro := newReadOnlyFixture(t)

	_, err := ro.Create("new.txt")
	assert.ErrorIs(t, err, errReadOnly)

	for _, flag := range []int{os.O_WRONLY, os.O_RDWR, os.O_CREATE, os.O_TRUNC, os.O_APPEND | os.O_WRONLY} {
		_, err := ro.OpenFile("lib/main.dart", flag, 0o644)
		assert.ErrorIs(t, err, errReadOnly, "flag %#x", flag)
	}

	assert.ErrorIs(t, ro.Remove("lib/main.dart"), errReadOnly)
	assert.ErrorIs(t, ro.Rename("lib/main.dart", "lib/moved.dart"), errReadOnly)
	assert.ErrorIs(t, ro.MkdirAll("lib/src", 0o755), errReadOnly)
	assert.ErrorIs(t, ro.Symlink("lib/main.dart", "link"), errReadOnly)
	assert.ErrorIs(t, ro.Chmod("lib/main.dart", 0o777), errReadOnly)
	_, err = ro.TempFile("lib", "tmp")
	assert.ErrorIs(t, err, errReadOnly)

	// Backing filesystem is untouched.
	infos, err := backing.ReadDir("lib")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "main.dart", infos[0].Name())
}

func TestReadOnly_Reads(t *testing.T) {
	_, ro := newReadOnlyFixture(t)

	f, err := ro.Open("lib/main.dart")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "// entry\n", string(b))

	_, err = f.Write([]byte("x"))
	assert.True(t, errors.Is(err, errReadOnly))
	assert.ErrorIs(t, f.Truncate(0), errReadOnly)

	fi, err := ro.Stat("lib/main.dart")
	require.NoError(t, err)
	assert.Zero(t, fi.Mode().Perm()&0o222, "write bits should be cleared, got %v", fi.Mode())

	infos, err := ro.ReadDir("lib")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Zero(t, infos[0].Mode().Perm()&0o222)
}

func TestReadOnly_ChrootStaysReadOnly(t *testing.T) {
	_, ro := newReadOnlyFixture(t)

	sub, err := ro.Chroot("lib")
	require.NoError(t, err)

	_, err = sub.Create("other.dart")
	assert.ErrorIs(t, err, errReadOnly)

	_, err = sub.Stat("main.dart")
	assert.NoError(t, err)
}

func TestReadOnly_Capabilities(t *testing.T) {
	_, ro := newReadOnlyFixture(t)
	assert.False(t, billy.CapabilityCheck(ro, billy.WriteCapability))
	assert.True(t, billy.CapabilityCheck(ro, billy.ReadCapability))
}
