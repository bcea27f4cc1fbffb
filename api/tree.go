package api

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Tree is one directory level of a layout description.
// Entries are materialized in slice order.
type Tree struct {
	Entries []Entry
}

// Entry is a named member of a Tree.
// It is a directory (branch) when Tree is non-nil, otherwise a file (leaf)
// whose literal contents are Content.
type Entry struct {
	// Name is a single path segment.
	Name string
	// Tree holds the children of a directory entry.
	Tree *Tree
	// Content is the literal text written to a file entry.
	Content string
}

// IsDir reports whether e describes a directory.
func (e Entry) IsDir() bool { return e.Tree != nil }

// New builds a Tree from entries.
func New(entries ...Entry) *Tree {
	return &Tree{Entries: entries}
}

// Dir builds a directory entry.
func Dir(name string, entries ...Entry) Entry {
	return Entry{Name: name, Tree: New(entries...)}
}

// File builds a file entry.
func File(name, content string) Entry {
	return Entry{Name: name, Content: content}
}

// FromValue converts a decoded description (nested map[string]any with
// string leaves) into a Tree. Keys are sorted so traversal is deterministic.
// A nil leaf becomes an empty file.
func FromValue(v any) (*Tree, error) {
	return fromValue(v, "")
}

func fromValue(v any, prefix string) (*Tree, error) {
	m, ok := v.(map[string]any)
	if !ok {
		if prefix == "" {
			return nil, fmt.Errorf("layout root must be a mapping, got %T", v)
		}
		return nil, fmt.Errorf("%s: expected a mapping, got %T", prefix, v)
	}

	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	t := &Tree{Entries: make([]Entry, 0, len(names))}
	for _, name := range names {
		p := path.Join(prefix, name)
		switch val := m[name].(type) {
		case map[string]any:
			sub, err := fromValue(val, p)
			if err != nil {
				return nil, err
			}
			t.Entries = append(t.Entries, Entry{Name: name, Tree: sub})
		case string:
			t.Entries = append(t.Entries, File(name, val))
		case nil:
			t.Entries = append(t.Entries, File(name, ""))
		default:
			return nil, fmt.Errorf("%s: unsupported value of type %T (want mapping or string)", p, val)
		}
	}
	return t, nil
}

// ValidateName checks that name is a single, relative path segment.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name %q must not contain path separators", name)
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("name %q must not be absolute", name)
	}
	return nil
}

// Validate checks every entry name and rejects duplicate names within a level.
func (t *Tree) Validate() error {
	return t.validate("")
}

func (t *Tree) validate(prefix string) error {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(t.Entries))
	for _, e := range t.Entries {
		p := path.Join(prefix, e.Name)
		if err := ValidateName(e.Name); err != nil {
			if prefix == "" {
				return err
			}
			return fmt.Errorf("%s: %w", prefix, err)
		}
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("%s: duplicate entry", p)
		}
		seen[e.Name] = struct{}{}
		if e.IsDir() {
			if err := e.Tree.validate(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// Walk visits every entry depth-first in pre-order. The path passed to fn is
// slash-separated and relative to t. Returning an error from fn stops the walk.
func (t *Tree) Walk(fn func(p string, e Entry) error) error {
	return t.walk("", fn)
}

func (t *Tree) walk(prefix string, fn func(string, Entry) error) error {
	if t == nil {
		return nil
	}
	for _, e := range t.Entries {
		p := path.Join(prefix, e.Name)
		if err := fn(p, e); err != nil {
			return err
		}
		if e.IsDir() {
			if err := e.Tree.walk(p, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Count returns the number of directory and file entries below t.
func (t *Tree) Count() (dirs, files int) {
	_ = t.Walk(func(_ string, e Entry) error {
		if e.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	})
	return dirs, files
}

// Lookup finds the entry at the slash-separated path p.
func (t *Tree) Lookup(p string) (Entry, bool) {
	cur := t
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		if cur == nil {
			return Entry{}, false
		}
		var found *Entry
		for j := range cur.Entries {
			if cur.Entries[j].Name == part {
				found = &cur.Entries[j]
				break
			}
		}
		if found == nil {
			return Entry{}, false
		}
		if i == len(parts)-1 {
			return *found, true
		}
		cur = found.Tree
	}
	return Entry{}, false
}

// Value returns the nested mapping form of t, the inverse of FromValue.
func (t *Tree) Value() map[string]any {
	m := make(map[string]any)
	if t == nil {
		return m
	}
	for _, e := range t.Entries {
		if e.IsDir() {
			m[e.Name] = e.Tree.Value()
		} else {
			m[e.Name] = e.Content
		}
	}
	return m
}

// MarshalJSON encodes t in its nested mapping form.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value())
}

// UnmarshalJSON decodes the nested mapping form.
func (t *Tree) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := FromValue(v)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}
