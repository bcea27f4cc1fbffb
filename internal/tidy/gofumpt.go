// Package tidy normalizes leaf contents before they reach the filesystem.
package tidy

import (
	"bytes"
	"strings"

	"mvdan.cc/gofumpt/format"
)

// GoBuffer formats Go leaves with gofumpt. Placeholders, non-.go paths and
// sources that fail to parse are returned unchanged.
func GoBuffer(path string, content []byte) []byte {
	if !strings.HasSuffix(path, ".go") || IsPlaceholder(content) {
		return content
	}
	formatted, err := format.Source(content, format.Options{})
	if err != nil {
		return content
	}
	return formatted
}

// IsPlaceholder reports whether content is only blank lines and // comments,
// the shape scaffold leaves usually take before anyone writes code in them.
func IsPlaceholder(content []byte) bool {
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if !bytes.HasPrefix(line, []byte("//")) {
			return false
		}
	}
	return true
}
