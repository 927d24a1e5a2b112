// Package config loads and validates the optional .lintgate YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for runner configuration.
const (
	// DefaultTool is the lint command invoked when none is configured.
	DefaultTool = "flake8"
	// DefaultMaxOutput caps captured tool output.
	DefaultMaxOutput = 1 << 20 // 1 MB
)

// Config holds the parsed .lintgate configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version      int        `yaml:"version"`
	RawTimeout   string     `yaml:"timeout"`    // e.g. "5m", "30s"; empty means no timeout
	RawMaxOutput int        `yaml:"max_output"` // bytes
	Tool         ToolConfig `yaml:"tool"`
	Env          EnvConfig  `yaml:"env"`
	RawTarget    string     `yaml:"target"` // directory to lint, relative to the project root
}

// ToolConfig selects the lint command and its extra arguments.
type ToolConfig struct {
	Name string   `yaml:"name"` // binary name, e.g. "flake8", "ruff"
	Args []string `yaml:"args"` // extra flags appended to the invocation
}

// EnvConfig points at an isolated tool environment (e.g. a virtualenv root)
// whose bin directory provides the lint command.
type EnvConfig struct {
	Dir string `yaml:"dir"` // relative to the project root, e.g. ".venv"
}

// Timeout returns the configured timeout. Zero means no timeout: the run
// blocks until the tool exits or the surrounding context is cancelled.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// MaxOutputBytes returns the configured max output size or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// ToolName returns the configured lint command, falling back to DefaultTool.
func (c *Config) ToolName() string {
	if c.Tool.Name != "" {
		return c.Tool.Name
	}
	return DefaultTool
}

// Target returns the directory to lint, relative to the project root.
func (c *Config) Target() string {
	if c.RawTarget != "" {
		return c.RawTarget
	}
	return "."
}

// LoadResult holds the parsed config and the discovered project root.
type LoadResult struct {
	Config      *Config
	ProjectRoot string // directory containing .lintgate; falls back to workspace
}

// Load reads the .lintgate file from the project root.
// The project root is discovered by walking upward from workspace looking
// for a .lintgate file. If none exists, a default Config is returned and
// the workspace itself is the root.
func Load(workspace string) (*LoadResult, error) {
	root, err := findProjectRoot(workspace)
	if err != nil {
		// No .lintgate found anywhere; use workspace as root.
		return &LoadResult{Config: &Config{}, ProjectRoot: workspace}, nil
	}

	path := filepath.Join(root, ".lintgate")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading .lintgate: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing .lintgate: %w", err)
	}
	return &LoadResult{Config: cfg, ProjectRoot: root}, nil
}

// findProjectRoot walks upward from dir looking for a directory containing
// a .lintgate file.
func findProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".lintgate")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf(".lintgate not found")
		}
		dir = parent
	}
}
