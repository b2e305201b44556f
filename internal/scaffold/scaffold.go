// Package scaffold writes a starter risk policy, an example clause
// file and an environment template into a project directory.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/unbound-force/clauserisk/internal/config"
)

//go:embed assets/*
var assets embed.FS

// PolicyFile is the name of the generated risk policy.
const PolicyFile = "clauserisk.yaml"

// assetNames maps embedded asset names to their on-disk names.
var assetNames = map[string]string{
	"clauses.example.yaml": "clauses.example.yaml",
	"env.example":          ".env.example",
}

// Options configures the scaffold operation.
type Options struct {
	// TargetDir is the directory to scaffold into. Defaults to the
	// current working directory; created when missing.
	TargetDir string

	// Force overwrites existing files when true.
	Force bool

	// Version is embedded in the marker comment. Defaults to "dev".
	Version string

	// Stdout receives the summary. Defaults to os.Stdout.
	Stdout io.Writer
}

// Result reports what the scaffold operation did.
type Result struct {
	Created     []string
	Skipped     []string
	Overwritten []string
}

// versionMarker returns the comment line prepended to each file.
func versionMarker(version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("# scaffolded by clauserisk %s\n", version)
}

// file is one scaffolded output.
type file struct {
	name    string
	content []byte
}

// files returns the generated policy followed by the embedded assets
// in name order.
func files() ([]file, error) {
	policy, err := config.DefaultConfig().WriteYAML()
	if err != nil {
		return nil, err
	}
	out := []file{{name: PolicyFile, content: policy}}

	paths, err := AssetPaths()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		content, err := AssetContent(p)
		if err != nil {
			return nil, err
		}
		name, ok := assetNames[p]
		if !ok {
			name = p
		}
		out = append(out, file{name: name, content: content})
	}
	return out, nil
}

// Run writes the starter files into opts.TargetDir. The policy file
// is the built-in default policy rendered as YAML, so it loads with
// "clauserisk score --config clauserisk.yaml" unchanged.
//
// Each file starts with a version marker:
//
//	# scaffolded by clauserisk vX.Y.Z
//
// Existing files are skipped unless opts.Force is set.
func Run(opts Options) (*Result, error) {
	if opts.TargetDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		opts.TargetDir = cwd
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	if err := os.MkdirAll(opts.TargetDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", opts.TargetDir, err)
	}

	out, err := files()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	marker := []byte(versionMarker(opts.Version))

	for _, f := range out {
		outPath := filepath.Join(opts.TargetDir, f.name)

		_, statErr := os.Stat(outPath)
		exists := statErr == nil

		if exists && !opts.Force {
			result.Skipped = append(result.Skipped, f.name)
			continue
		}

		data := append(append([]byte{}, marker...), f.content...)
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("creating %s: %w", f.name, err)
		}

		if exists {
			result.Overwritten = append(result.Overwritten, f.name)
		} else {
			result.Created = append(result.Created, f.name)
		}
	}

	printSummary(opts.Stdout, result)
	return result, nil
}

func printSummary(w io.Writer, r *Result) {
	fmt.Fprintln(w, "clauserisk project initialized:")

	for _, f := range r.Created {
		fmt.Fprintf(w, "  created: %s\n", f)
	}
	for _, f := range r.Skipped {
		fmt.Fprintf(w, "  skipped: %s (already exists)\n", f)
	}
	for _, f := range r.Overwritten {
		fmt.Fprintf(w, "  overwritten: %s\n", f)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run: clauserisk score --config %s --input clauses.example.yaml\n", PolicyFile)

	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "%d file(s) skipped (use --force to overwrite).\n", len(r.Skipped))
	}
}

// AssetPaths returns the names of all embedded assets, sorted.
func AssetPaths() ([]string, error) {
	var paths []string
	err := fs.WalkDir(assets, "assets", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, strings.TrimPrefix(path, "assets/"))
		return nil
	})
	sort.Strings(paths)
	return paths, err
}

// AssetContent returns the raw content of an embedded asset.
func AssetContent(name string) ([]byte, error) {
	return assets.ReadFile("assets/" + name)
}
