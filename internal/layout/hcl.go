package layout

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// HCL layouts are written as nested blocks:
//
//	dir "lib" {
//	  file "main.dart" {
//	    content = "// entry point\n"
//	  }
//	}
type hclBody struct {
	Dirs  []hclDir  `hcl:"dir,block"`
	Files []hclFile `hcl:"file,block"`
}

type hclDir struct {
	Name  string    `hcl:"name,label"`
	Dirs  []hclDir  `hcl:"dir,block"`
	Files []hclFile `hcl:"file,block"`
}

type hclFile struct {
	Name    string `hcl:"name,label"`
	Content string `hcl:"content,optional"`
}

func decodeHCL(src []byte, filename string) (any, error) {
	var body hclBody
	// hclsimple picks the syntax from the extension.
	if err := hclsimple.Decode(hclFilename(filename), src, nil, &body); err != nil {
		return nil, fmt.Errorf("parse hcl %s: %w", filename, err)
	}
	return hclToValue(body.Dirs, body.Files, "")
}

func hclToValue(dirs []hclDir, files []hclFile, prefix string) (map[string]any, error) {
	m := make(map[string]any, len(dirs)+len(files))
	for _, d := range dirs {
		if _, dup := m[d.Name]; dup {
			return nil, fmt.Errorf("%s%s: duplicate entry", prefix, d.Name)
		}
		sub, err := hclToValue(d.Dirs, d.Files, prefix+d.Name+"/")
		if err != nil {
			return nil, err
		}
		m[d.Name] = sub
	}
	for _, f := range files {
		if _, dup := m[f.Name]; dup {
			return nil, fmt.Errorf("%s%s: duplicate entry", prefix, f.Name)
		}
		m[f.Name] = f.Content
	}
	return m, nil
}

func hclFilename(name string) string {
	if name == "" {
		return "layout.hcl"
	}
	f, err := FormatForPath(name)
	if err != nil || f != HCL {
		return name + ".hcl"
	}
	return name
}
