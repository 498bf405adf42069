package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ProjectOverrides is an optional per-project `.mint.toml` file sitting
// next to module.mint: search paths to extend the module loader with
// (mirroring the teacher's AILANG_PATH env var, but file-based and
// project-local rather than an ambient environment variable) and a
// default parallel job count for `mint build`. Grounded on
// standardbeagle-lci's own TOML-based project configuration and wired
// here per SPEC_FULL.md's domain-stack section.
type ProjectOverrides struct {
	SearchPaths []string `toml:"search_paths"`
	JobCount    int      `toml:"job_count"`
}

const projectOverridesFileName = ".mint.toml"

// loadProjectOverrides reads <sourceRoot>/.mint.toml if present. A
// missing file is not an error: it simply means no overrides apply.
func loadProjectOverrides(sourceRoot string) (*ProjectOverrides, error) {
	content, err := os.ReadFile(filepath.Join(sourceRoot, projectOverridesFileName))
	if os.IsNotExist(err) {
		return &ProjectOverrides{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ov ProjectOverrides
	if err := toml.Unmarshal(content, &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

// UserConfig is Mint's user-level configuration, `~/.mint/config.yaml`:
// additional module search paths shared across every project the user
// builds, the same role the teacher's AILANG_PATH/AILANG_STDLIB
// environment variables play, expressed as a persisted file instead.
type UserConfig struct {
	SearchPaths []string `yaml:"search_paths"`
}

// LoadUserConfig reads ~/.mint/config.yaml. A missing home directory or
// config file yields a zero-value UserConfig rather than an error: the
// user-level file is entirely optional.
func LoadUserConfig() (*UserConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &UserConfig{}, nil
	}
	content, err := os.ReadFile(filepath.Join(home, ".mint", "config.yaml"))
	if os.IsNotExist(err) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg UserConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
