// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/slangdroid/pkg/android"
)

const (
	// DefaultRepoURL is the upstream Slang repository
	DefaultRepoURL = "https://github.com/shader-slang/slang.git"

	// DefaultTag is the Slang release built when none is requested
	DefaultTag = "v2025.24.2"

	// DefaultReleaseRepo hosts the prebuilt Android artifacts
	DefaultReleaseRepo = "arc-language/slangdroid"
)

// Config holds slangdroid configuration
type Config struct {
	Tag            string   `yaml:"tag"`
	RepoURL        string   `yaml:"repo_url"`
	ABIs           []string `yaml:"abis"`
	Platform       string   `yaml:"platform"`
	NDKPath        string   `yaml:"ndk_path"`
	WorkDir        string   `yaml:"work_dir"`
	DistDir        string   `yaml:"dist_dir"`
	ExtraCMakeArgs string   `yaml:"extra_cmake_args"`
	Package        string   `yaml:"package"` // xz, zstd, or empty for none
	ReleaseRepo    string   `yaml:"release_repo"`
	Debug          bool     `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Tag:         DefaultTag,
		RepoURL:     DefaultRepoURL,
		ABIs:        []string{string(android.DefaultABI)},
		Platform:    android.DefaultTarget().Platform.String(),
		WorkDir:     "build_slang",
		DistDir:     "dist",
		ReleaseRepo: DefaultReleaseRepo,
	}
}

// DefaultConfigPath returns $HOME/.config/slangdroid/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "slangdroid", "config.yaml"), nil
}

// LoadConfig loads configuration from file. Values missing from the file
// keep their defaults, and environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			cfg.applyEnv(os.Getenv)
			return cfg, nil
		}
		path = p
	}

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if tag := getenv("SLANG_TAG"); tag != "" {
		c.Tag = tag
	}
	if dir := getenv("SLANGDROID_WORK_DIR"); dir != "" {
		c.WorkDir = dir
	}
}

// Targets validates the configured ABIs and platform
func (c *Config) Targets() ([]android.Target, error) {
	platform, err := android.ParsePlatform(c.Platform)
	if err != nil {
		return nil, err
	}

	if len(c.ABIs) == 0 {
		return []android.Target{{ABI: android.DefaultABI, Platform: platform}}, nil
	}

	seen := make(map[android.ABI]bool)
	var targets []android.Target
	for _, s := range c.ABIs {
		abi, err := android.ParseABI(s)
		if err != nil {
			return nil, err
		}
		if seen[abi] {
			continue
		}
		seen[abi] = true
		targets = append(targets, android.Target{ABI: abi, Platform: platform})
	}
	return targets, nil
}

// Paths resolves the work and dist directories to absolute paths
func (c *Config) Paths() (workDir, distDir string, err error) {
	if workDir, err = absPath(c.WorkDir); err != nil {
		return "", "", fmt.Errorf("resolving work dir: %w", err)
	}
	if distDir, err = absPath(c.DistDir); err != nil {
		return "", "", fmt.Errorf("resolving dist dir: %w", err)
	}
	return workDir, distDir, nil
}

func absPath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}
