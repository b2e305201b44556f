package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/unbound-force/clauserisk/internal/config"
)

var wantFiles = []string{PolicyFile, ".env.example", "clauses.example.yaml"}

// TestRun_CreatesFiles verifies that init in an empty directory
// creates the policy, the example clauses and the env template.
func TestRun_CreatesFiles(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	result, err := Run(Options{
		TargetDir: dir,
		Version:   "1.2.3",
		Stdout:    &buf,
	})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if len(result.Created) != len(wantFiles) {
		t.Errorf("expected %d created files, got %d: %v", len(wantFiles), len(result.Created), result.Created)
	}
	if len(result.Skipped) != 0 {
		t.Errorf("expected 0 skipped files, got %d: %v", len(result.Skipped), result.Skipped)
	}
	if len(result.Overwritten) != 0 {
		t.Errorf("expected 0 overwritten files, got %d: %v", len(result.Overwritten), result.Overwritten)
	}

	for _, rel := range wantFiles {
		if _, err := os.Stat(filepath.Join(dir, rel)); os.IsNotExist(err) {
			t.Errorf("expected file %s to exist", rel)
		}
	}

	output := buf.String()
	if !strings.Contains(output, "created:") {
		t.Errorf("summary should mention 'created:', got:\n%s", output)
	}
	if !strings.Contains(output, "clauserisk score --config clauserisk.yaml") {
		t.Errorf("summary should contain the next-step hint, got:\n%s", output)
	}
}

// TestRun_CreatesMissingTargetDir verifies that a nested target
// directory is created on demand.
func TestRun_CreatesMissingTargetDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "legal", "policies")

	if _, err := Run(Options{TargetDir: dir, Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, PolicyFile)); err != nil {
		t.Errorf("expected policy in nested dir: %v", err)
	}
}

// TestRun_SkipsExisting verifies that a second run without Force
// leaves every file alone and suggests --force.
func TestRun_SkipsExisting(t *testing.T) {
	dir := t.TempDir()

	if _, err := Run(Options{TargetDir: dir, Version: "1.0.0", Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatalf("first Run() returned error: %v", err)
	}

	// A hand-edited policy must survive.
	policyPath := filepath.Join(dir, PolicyFile)
	if err := os.WriteFile(policyPath, []byte("workers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	result, err := Run(Options{TargetDir: dir, Version: "1.0.0", Stdout: &buf})
	if err != nil {
		t.Fatalf("second Run() returned error: %v", err)
	}

	if len(result.Created) != 0 {
		t.Errorf("expected 0 created, got %d: %v", len(result.Created), result.Created)
	}
	if len(result.Skipped) != len(wantFiles) {
		t.Errorf("expected %d skipped, got %d: %v", len(wantFiles), len(result.Skipped), result.Skipped)
	}

	content, err := os.ReadFile(policyPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "workers: 2\n" {
		t.Errorf("existing policy was modified: %q", content)
	}

	output := buf.String()
	if !strings.Contains(output, "skipped:") {
		t.Errorf("summary should mention 'skipped:', got:\n%s", output)
	}
	if !strings.Contains(output, "3 file(s) skipped (use --force to overwrite)") {
		t.Errorf("summary should suggest --force, got:\n%s", output)
	}
}

// TestRun_ForceOverwrites verifies that Force replaces every file.
func TestRun_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()

	if _, err := Run(Options{TargetDir: dir, Version: "1.0.0", Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatalf("first Run() returned error: %v", err)
	}

	var buf bytes.Buffer
	result, err := Run(Options{TargetDir: dir, Force: true, Version: "2.0.0", Stdout: &buf})
	if err != nil {
		t.Fatalf("second Run() with force returned error: %v", err)
	}

	if len(result.Created) != 0 {
		t.Errorf("expected 0 created, got %d: %v", len(result.Created), result.Created)
	}
	if len(result.Skipped) != 0 {
		t.Errorf("expected 0 skipped, got %d: %v", len(result.Skipped), result.Skipped)
	}
	if len(result.Overwritten) != len(wantFiles) {
		t.Errorf("expected %d overwritten, got %d: %v", len(wantFiles), len(result.Overwritten), result.Overwritten)
	}
	if !strings.Contains(buf.String(), "overwritten:") {
		t.Errorf("summary should mention 'overwritten:', got:\n%s", buf.String())
	}

	content, err := os.ReadFile(filepath.Join(dir, PolicyFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "# scaffolded by clauserisk 2.0.0\n") {
		t.Errorf("expected the new version marker, got:\n%s", content)
	}
}

// TestRun_VersionMarker verifies every scaffolded file starts with
// the version marker.
func TestRun_VersionMarker(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0", "# scaffolded by clauserisk 0.1.0"},
		{"", "# scaffolded by clauserisk dev"},
	}
	for _, tt := range tests {
		dir := t.TempDir()
		if _, err := Run(Options{TargetDir: dir, Version: tt.version, Stdout: &bytes.Buffer{}}); err != nil {
			t.Fatalf("Run() returned error: %v", err)
		}
		for _, rel := range wantFiles {
			content, err := os.ReadFile(filepath.Join(dir, rel))
			if err != nil {
				t.Fatalf("reading %s: %v", rel, err)
			}
			firstLine := strings.SplitN(string(content), "\n", 2)[0]
			if firstLine != tt.want {
				t.Errorf("file %s: expected first line %q, got %q", rel, tt.want, firstLine)
			}
		}
	}
}

// TestRun_PolicyLoads verifies the scaffolded policy is accepted by
// the config loader and matches the built-in defaults.
func TestRun_PolicyLoads(t *testing.T) {
	dir := t.TempDir()
	if _, err := Run(Options{TargetDir: dir, Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, PolicyFile))
	if err != nil {
		t.Fatalf("loading scaffolded policy: %v", err)
	}
	def := config.DefaultConfig()
	if cfg.Severity != def.Severity {
		t.Errorf("severity = %+v, want %+v", cfg.Severity, def.Severity)
	}
	if len(cfg.Categories) != len(def.Categories) {
		t.Errorf("got %d categories, want %d", len(cfg.Categories), len(def.Categories))
	}
}

// TestRun_ExampleClausesDecode verifies the example clause file is
// well-formed input.
func TestRun_ExampleClausesDecode(t *testing.T) {
	dir := t.TempDir()
	if _, err := Run(Options{TargetDir: dir, Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "clauses.example.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Clauses []struct {
			Clause     string  `yaml:"clause"`
			Label      string  `yaml:"label"`
			Confidence float64 `yaml:"confidence"`
		} `yaml:"clauses"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		t.Fatalf("decoding example clauses: %v", err)
	}
	if len(doc.Clauses) != 4 {
		t.Fatalf("expected 4 example clauses, got %d", len(doc.Clauses))
	}
	for i, c := range doc.Clauses {
		if c.Clause == "" || c.Label == "" || c.Confidence <= 0 || c.Confidence > 1 {
			t.Errorf("clause %d is incomplete: %+v", i, c)
		}
	}
}

// TestAssetPaths verifies the embedded asset manifest.
func TestAssetPaths(t *testing.T) {
	paths, err := AssetPaths()
	if err != nil {
		t.Fatalf("AssetPaths() returned error: %v", err)
	}

	want := []string{"clauses.example.yaml", "env.example"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d assets, got %d: %v", len(want), len(paths), paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("asset %d = %q, want %q", i, p, want[i])
		}
		if _, ok := assetNames[p]; !ok {
			t.Errorf("asset %q has no output name", p)
		}
	}
}
