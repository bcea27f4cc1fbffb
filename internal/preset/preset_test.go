package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPreset(t *testing.T) {
	tree, ok := Lookup(Default)
	require.True(t, ok)
	require.NoError(t, tree.Validate())

	dirs, files := tree.Count()
	assert.Equal(t, 10, dirs)
	assert.Equal(t, 11, files)

	e, ok := tree.Lookup("lib/src/services/storage_service.dart")
	require.True(t, ok)
	assert.Equal(t, "// Serviço de armazenamento\n", e.Content)

	e, ok = tree.Lookup("example/lib/main.dart")
	require.True(t, ok)
	assert.Equal(t, "// Exemplo de uso do pacote\n", e.Content)
}

func TestLookupReturnsCopies(t *testing.T) {
	a, _ := Lookup(Default)
	a.Entries = nil
	b, _ := Lookup(Default)
	assert.NotEmpty(t, b.Entries)
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("rails-app")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	assert.Contains(t, Names(), Default)
}
