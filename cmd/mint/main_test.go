package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func writeTestModule(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "module.mint"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestInitThenOptionsReportsDeclaredOptions(t *testing.T) {
	srcDir := t.TempDir()
	writeTestModule(t, srcDir, `option greeting : string { value = "hi" }`)

	buildRoot = t.TempDir()
	defer func() { buildRoot = "" }()

	if err := initCmd.RunE(&cobra.Command{}, []string{srcDir}); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := os.Stat(filepath.Join(buildRoot, "build.mint")); err != nil {
		t.Fatalf("expected build.mint to be written: %v", err)
	}

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	if err := optionsCmd.RunE(cmd, nil); err != nil {
		t.Fatalf("options: %v", err)
	}
	if out := buf.String(); !bytes.Contains([]byte(out), []byte("greeting")) {
		t.Fatalf("expected greeting in options output, got:\n%s", out)
	}
}

func TestConfigAppliesOverrideAndPersists(t *testing.T) {
	srcDir := t.TempDir()
	writeTestModule(t, srcDir, `option greeting : string { value = "hi" }`)

	buildRoot = t.TempDir()
	defer func() { buildRoot = "" }()

	if err := initCmd.RunE(&cobra.Command{}, []string{srcDir}); err != nil {
		t.Fatalf("init: %v", err)
	}

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	if err := configCmd.RunE(cmd, []string{"--greeting=hello"}); err != nil {
		t.Fatalf("config: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(buildRoot, "build.mint"))
	if err != nil {
		t.Fatalf("reading build.mint: %v", err)
	}
	if !bytes.Contains(content, []byte(`value = "hello"`)) {
		t.Fatalf("expected the override to be persisted, got:\n%s", content)
	}
}

func TestBuildRunsEveryTargetWithNoArgs(t *testing.T) {
	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "a.c"), []byte("int main(){return 0;}"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeTestModule(t, srcDir, `
lib = target {
  sources = ["a.c"]
  outputs = ["lib.o"]
}
`)

	buildRoot = t.TempDir()
	defer func() { buildRoot = "" }()

	if err := initCmd.RunE(&cobra.Command{}, []string{srcDir}); err != nil {
		t.Fatalf("init: %v", err)
	}

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	if err := runBuild(cmd, nil); err != nil {
		t.Fatalf("build: %v", err)
	}
}

func TestBuildRejectsUnknownTargetName(t *testing.T) {
	srcDir := t.TempDir()
	writeTestModule(t, srcDir, `name = "demo"`)

	buildRoot = t.TempDir()
	defer func() { buildRoot = "" }()

	if err := initCmd.RunE(&cobra.Command{}, []string{srcDir}); err != nil {
		t.Fatalf("init: %v", err)
	}

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	if err := runBuild(cmd, []string{"nonexistent"}); err == nil {
		t.Fatalf("expected an error building an unknown target")
	}
}

func TestSplitBuildArgsSeparatesTargetsFromOverrides(t *testing.T) {
	overrides, targets := splitBuildArgs([]string{"app", "--debug=true", "lib"})
	if len(targets) != 2 || targets[0] != "app" || targets[1] != "lib" {
		t.Fatalf("expected targets [app, lib], got %#v", targets)
	}
	if len(overrides) != 1 || overrides[0][0] != "debug" || overrides[0][1] != "true" {
		t.Fatalf("expected override debug=true, got %#v", overrides)
	}
}
