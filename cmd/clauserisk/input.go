package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// clauseFile is the object form of a clause file. A bare list of
// clauses is accepted as well.
type clauseFile struct {
	Clauses []taxonomy.ClauseInput `json:"clauses" yaml:"clauses"`
}

// readClauses loads classified clauses from path, or from stdin when
// path is "" or "-". Files ending in .yaml or .yml are decoded as YAML,
// other files as JSON; stdin is sniffed.
func readClauses(path string, stdin io.Reader) ([]taxonomy.ClauseInput, error) {
	var (
		data []byte
		err  error
		name = path
	)
	if path == "" || path == "-" {
		name = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	var inputs []taxonomy.ClauseInput
	if isYAML(path, data) {
		inputs, err = decodeYAML(data)
	} else {
		inputs, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	for i := range inputs {
		if err := normalizeExpected(&inputs[i]); err != nil {
			return nil, fmt.Errorf("%s: clause %d: %w", name, i, err)
		}
	}
	// Always return a non-nil slice so JSON marshals as [] not null.
	if inputs == nil {
		inputs = []taxonomy.ClauseInput{}
	}
	return inputs, nil
}

func isYAML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] != '[' && trimmed[0] != '{'
}

func decodeJSON(data []byte) ([]taxonomy.ClauseInput, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []taxonomy.ClauseInput
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var f clauseFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, err
	}
	return f.Clauses, nil
}

func decodeYAML(data []byte) ([]taxonomy.ClauseInput, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []taxonomy.ClauseInput
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var f clauseFile
	if err := root.Decode(&f); err != nil {
		return nil, err
	}
	return f.Clauses, nil
}

// normalizeExpected accepts a canonical category name or its slug.
func normalizeExpected(in *taxonomy.ClauseInput) error {
	if in.Expected == "" || in.Expected.Valid() {
		return nil
	}
	if cat, ok := taxonomy.CategoryFromSlug(string(in.Expected)); ok {
		in.Expected = cat
		return nil
	}
	for _, cat := range taxonomy.Categories() {
		if strings.EqualFold(string(cat), strings.TrimSpace(string(in.Expected))) {
			in.Expected = cat
			return nil
		}
	}
	return fmt.Errorf("unknown expected category %q", in.Expected)
}
