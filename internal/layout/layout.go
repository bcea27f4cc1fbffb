// Package layout loads tree descriptions from JSON, YAML and HCL files.
//
// Every format decodes to the same generic form: nested map[string]any
// with string leaves. That form can be narrowed with a JSONPath selector
// before it is converted into an api.Tree.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentic-research/sprout/api"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

// Format identifies a description file syntax.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	HCL  Format = "hcl"
)

// FormatForPath picks a Format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".hcl":
		return HCL, nil
	default:
		return "", fmt.Errorf("unsupported layout file %q (want .json, .yaml, .yml or .hcl)", path)
	}
}

// Decode parses src into the generic mapping form.
// filename is only used for diagnostics.
func Decode(src []byte, filename string, f Format) (any, error) {
	switch f {
	case JSON:
		v, err := oj.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse json %s: %w", filename, err)
		}
		return v, nil
	case YAML:
		var v any
		if err := yaml.Unmarshal(src, &v); err != nil {
			return nil, fmt.Errorf("parse yaml %s: %w", filename, err)
		}
		if v == nil {
			// Empty document.
			return map[string]any{}, nil
		}
		return normalizeYAML(v)
	case HCL:
		return decodeHCL(src, filename)
	default:
		return nil, fmt.Errorf("unknown layout format %q", f)
	}
}

// normalizeYAML rejects non-string mapping keys, which yaml.v3 would
// otherwise hand back as map[any]any.
func normalizeYAML(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			n, err := normalizeYAML(child)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			val[k] = n
		}
		return val, nil
	case map[any]any:
		return nil, fmt.Errorf("mapping keys must be strings")
	default:
		return val, nil
	}
}

// Load reads a description file, optionally narrows it with a JSONPath
// selector, and returns the validated tree.
func Load(path, selector string) (*api.Tree, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return Parse(src, path, f, selector)
}

// Parse is Load for an in-memory description.
func Parse(src []byte, filename string, f Format, selector string) (*api.Tree, error) {
	data, err := Decode(src, filename, f)
	if err != nil {
		return nil, err
	}
	if selector != "" {
		if data, err = Select(data, selector); err != nil {
			return nil, err
		}
	}
	tree, err := api.FromValue(data)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", filename, err)
	}
	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", filename, err)
	}
	return tree, nil
}
