package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate user config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "flyview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flyview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "flyview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "flyview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// ApplicationRoot resolves the directory config_dir and assets_dir hang off.
// An explicit root wins. Otherwise the executable's directory is used when it
// holds the config directory, and the working directory when it does not
// (the case for `go run`).
func (p PathsConfig) ApplicationRoot() (string, error) {
	if p.Root != "" {
		return filepath.Abs(p.Root)
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		if isDir(filepath.Join(dir, p.ConfigDir)) {
			return dir, nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving application root: %w", err)
	}
	return wd, nil
}

// Resolved holds absolute paths derived from PathsConfig.
type Resolved struct {
	Root        string
	ConfigDir   string
	AssetsDir   string
	Display     string
	Input       string
	Screenshots string
}

// Resolve turns the configured paths into absolute ones.
func (p PathsConfig) Resolve() (Resolved, error) {
	root, err := p.ApplicationRoot()
	if err != nil {
		return Resolved{}, err
	}

	join := func(base, rel string) string {
		if filepath.IsAbs(rel) {
			return rel
		}
		return filepath.Join(base, rel)
	}

	configDir := join(root, p.ConfigDir)
	return Resolved{
		Root:        root,
		ConfigDir:   configDir,
		AssetsDir:   join(root, p.AssetsDir),
		Display:     join(configDir, p.Display),
		Input:       join(configDir, p.Input),
		Screenshots: join(root, p.Screenshots),
	}, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
