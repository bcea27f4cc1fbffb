package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValue(t *testing.T) {
	input := map[string]any{
		"c.txt": "world",
		"a": map[string]any{
			"b.txt": "hello",
		},
		"empty": nil,
	}

	tree, err := FromValue(input)
	require.NoError(t, err)

	// Keys are sorted.
	require.Len(t, tree.Entries, 3)
	assert.Equal(t, "a", tree.Entries[0].Name)
	assert.True(t, tree.Entries[0].IsDir())
	assert.Equal(t, "c.txt", tree.Entries[1].Name)
	assert.Equal(t, "world", tree.Entries[1].Content)
	assert.Equal(t, "empty", tree.Entries[2].Name)
	assert.False(t, tree.Entries[2].IsDir())
	assert.Equal(t, "", tree.Entries[2].Content)

	b, ok := tree.Lookup("a/b.txt")
	require.True(t, ok)
	assert.Equal(t, "hello", b.Content)
}

func TestFromValue_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"root not mapping", "just a string", "layout root must be a mapping"},
		{"number leaf", map[string]any{"n": 42}, "n: unsupported value of type int"},
		{"nested list", map[string]any{"a": map[string]any{"b": []any{"x"}}}, "a/b: unsupported value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromValue(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEmptyMappingIsEmptyDir(t *testing.T) {
	tree, err := FromValue(map[string]any{"keep": map[string]any{}})
	require.NoError(t, err)
	require.Len(t, tree.Entries, 1)
	assert.True(t, tree.Entries[0].IsDir())
	assert.Empty(t, tree.Entries[0].Tree.Entries)
}

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"main.go", ".gitignore", "README", "a b"} {
		assert.NoError(t, ValidateName(ok), ok)
	}
	for _, bad := range []string{"", ".", "..", "a/b", `a\b`, "/etc"} {
		assert.Error(t, ValidateName(bad), bad)
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tree := New(Dir("lib", File("a.dart", "")), File("pubspec.yaml", ""))
		assert.NoError(t, tree.Validate())
	})

	t.Run("nested bad name", func(t *testing.T) {
		tree := New(Dir("lib", File("../escape", "")))
		err := tree.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lib:")
	})

	t.Run("duplicate", func(t *testing.T) {
		tree := New(Dir("lib"), File("lib", ""))
		err := tree.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lib: duplicate entry")
	})
}

func TestWalkOrder(t *testing.T) {
	tree := New(
		Dir("a", File("b.txt", "hello"), Dir("d")),
		File("c.txt", "world"),
	)

	var visited []string
	err := tree.Walk(func(p string, e Entry) error {
		visited = append(visited, p)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a/b.txt", "a/d", "c.txt"}, visited)

	stop := errors.New("stop")
	visited = nil
	err = tree.Walk(func(p string, e Entry) error {
		visited = append(visited, p)
		if p == "a/b.txt" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"a", "a/b.txt"}, visited)
}

func TestCount(t *testing.T) {
	tree := New(
		Dir("a", File("b.txt", "hello"), Dir("d")),
		File("c.txt", "world"),
	)
	dirs, files := tree.Count()
	assert.Equal(t, 2, dirs)
	assert.Equal(t, 2, files)

	dirs, files = New().Count()
	assert.Zero(t, dirs)
	assert.Zero(t, files)
}

func TestLookupMissing(t *testing.T) {
	tree := New(Dir("a", File("b.txt", "")))
	_, ok := tree.Lookup("a/c.txt")
	assert.False(t, ok)
	_, ok = tree.Lookup("a/b.txt/deeper")
	assert.False(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	tree := New(Dir("a", File("b.txt", "hello")), File("c.txt", "world"))

	b, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"b.txt":"hello"},"c.txt":"world"}`, string(b))

	var back Tree
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, *tree, back)
}
