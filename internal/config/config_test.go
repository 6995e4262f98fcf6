package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Paths.ConfigDir != "config" {
		t.Errorf("expected config dir 'config', got %s", cfg.Paths.ConfigDir)
	}
	if cfg.Paths.AssetsDir != "assets" {
		t.Errorf("expected assets dir 'assets', got %s", cfg.Paths.AssetsDir)
	}
	if cfg.Paths.Scene != "../my_scene.yaml" {
		t.Errorf("expected scene '../my_scene.yaml', got %s", cfg.Paths.Scene)
	}
	if len(cfg.Paths.UILayouts) != 2 {
		t.Errorf("expected 2 UI layouts, got %d", len(cfg.Paths.UILayouts))
	}

	if cfg.Controls.FlySpeed != 100 {
		t.Errorf("expected fly speed 100, got %f", cfg.Controls.FlySpeed)
	}
	if cfg.Controls.MoveX != "move_x" || cfg.Controls.MoveY != "move_y" || cfg.Controls.MoveZ != "move_z" {
		t.Errorf("unexpected axis names: %+v", cfg.Controls)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
paths:
  assets_dir: "data"
  scene: "scenes/teapot.yaml"
  ui_layouts: ["ui/fov.yaml"]

controls:
  fly_speed: 12.5
  mouse_look: false

logging:
  level: "debug"
  log_file: "viewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Paths.AssetsDir != "data" {
		t.Errorf("expected assets dir 'data', got %s", cfg.Paths.AssetsDir)
	}
	if cfg.Paths.Scene != "scenes/teapot.yaml" {
		t.Errorf("expected scene 'scenes/teapot.yaml', got %s", cfg.Paths.Scene)
	}
	if len(cfg.Paths.UILayouts) != 1 || cfg.Paths.UILayouts[0] != "ui/fov.yaml" {
		t.Errorf("expected ui layouts [ui/fov.yaml], got %v", cfg.Paths.UILayouts)
	}
	// Untouched keys keep their defaults.
	if cfg.Paths.ConfigDir != "config" {
		t.Errorf("expected default config dir, got %s", cfg.Paths.ConfigDir)
	}
	if cfg.Controls.FlySpeed != 12.5 {
		t.Errorf("expected fly speed 12.5, got %f", cfg.Controls.FlySpeed)
	}
	if cfg.Controls.MouseLook {
		t.Error("expected mouse_look to be false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
controls:
  fly_speed: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "scene flag",
			setup: func() { *flagScene = "other.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Paths.Scene != "other.yaml" {
					t.Errorf("expected scene other.yaml, got %s", cfg.Paths.Scene)
				}
			},
			teardown: func() { *flagScene = "" },
		},
		{
			name:  "speed flag",
			setup: func() { *flagSpeed = 42 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Controls.FlySpeed != 42 {
					t.Errorf("expected fly speed 42, got %f", cfg.Controls.FlySpeed)
				}
			},
			teardown: func() { *flagSpeed = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
paths:
  scene: "from_file.yaml"
controls:
  fly_speed: 5
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagScene = "from_flag.yaml"
	defer func() {
		*flagConfig = ""
		*flagScene = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Paths.Scene != "from_flag.yaml" {
		t.Errorf("expected scene from flag, got %s", cfg.Paths.Scene)
	}
	if cfg.Controls.FlySpeed != 5 {
		t.Errorf("expected fly speed 5 from file, got %f", cfg.Controls.FlySpeed)
	}
}

func TestResolveExplicitRoot(t *testing.T) {
	root := t.TempDir()
	p := Default().Paths
	p.Root = root

	r, err := p.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.ConfigDir != filepath.Join(root, "config") {
		t.Errorf("config dir: got %s", r.ConfigDir)
	}
	if r.AssetsDir != filepath.Join(root, "assets") {
		t.Errorf("assets dir: got %s", r.AssetsDir)
	}
	if r.Display != filepath.Join(root, "config", "display.yaml") {
		t.Errorf("display: got %s", r.Display)
	}
	if r.Input != filepath.Join(root, "config", "input.yaml") {
		t.Errorf("input: got %s", r.Input)
	}
}

func TestResolveKeepsAbsolutePaths(t *testing.T) {
	p := Default().Paths
	p.Root = t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")
	p.AssetsDir = abs

	r, err := p.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.AssetsDir != abs {
		t.Errorf("expected absolute assets dir %s, got %s", abs, r.AssetsDir)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Controls.FlySpeed = 7

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Controls.FlySpeed != 7 {
		t.Errorf("expected fly speed 7, got %f", loaded.Controls.FlySpeed)
	}
}
