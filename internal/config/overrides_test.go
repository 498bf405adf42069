package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectOverridesReadsTomlFile(t *testing.T) {
	dir := t.TempDir()
	content := "search_paths = [\"../shared\"]\njob_count = 4\n"
	if err := os.WriteFile(filepath.Join(dir, ".mint.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ov, err := loadProjectOverrides(dir)
	if err != nil {
		t.Fatalf("loadProjectOverrides: %v", err)
	}
	if len(ov.SearchPaths) != 1 || ov.SearchPaths[0] != "../shared" {
		t.Fatalf("expected search_paths to be parsed, got %#v", ov.SearchPaths)
	}
	if ov.JobCount != 4 {
		t.Fatalf("expected job_count 4, got %d", ov.JobCount)
	}
}

func TestLoadProjectOverridesMissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	ov, err := loadProjectOverrides(dir)
	if err != nil {
		t.Fatalf("loadProjectOverrides: %v", err)
	}
	if len(ov.SearchPaths) != 0 || ov.JobCount != 0 {
		t.Fatalf("expected zero-value overrides, got %#v", ov)
	}
}

func TestNewProjectAppliesTomlSearchPathsAndJobCount(t *testing.T) {
	dir := t.TempDir()
	shared := t.TempDir()
	content := "search_paths = [\"" + shared + "\"]\njob_count = 8\n"
	if err := os.WriteFile(filepath.Join(dir, ".mint.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	writeModule(t, dir, `name = "demo"`)

	bc := newTestBuildConfiguration(t)
	if err := bc.SetBuildRoot(t.TempDir()); err != nil {
		t.Fatalf("SetBuildRoot: %v", err)
	}
	proj, err := bc.AddSourceProject(dir, true)
	if err != nil {
		t.Fatalf("AddSourceProject: %v", err)
	}
	if got := proj.JobCount(); got != 8 {
		t.Fatalf("expected job count 8, got %d", got)
	}
}

func TestLoadUserConfigReadsYamlFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	mintDir := filepath.Join(home, ".mint")
	if err := os.MkdirAll(mintDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "search_paths:\n  - /opt/mint/stdlib\n"
	if err := os.WriteFile(filepath.Join(mintDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig: %v", err)
	}
	if len(cfg.SearchPaths) != 1 || cfg.SearchPaths[0] != "/opt/mint/stdlib" {
		t.Fatalf("expected search_paths to be parsed, got %#v", cfg.SearchPaths)
	}
}

func TestLoadUserConfigMissingFileIsNotAnError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig: %v", err)
	}
	if len(cfg.SearchPaths) != 0 {
		t.Fatalf("expected zero-value user config, got %#v", cfg)
	}
}
