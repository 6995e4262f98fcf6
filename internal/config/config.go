// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PathsConfig locates the files the viewer consumes at startup.
// ConfigDir and AssetsDir are relative to Root; Display and Input are
// relative to ConfigDir; Scene and UILayouts are relative to AssetsDir.
type PathsConfig struct {
	Root        string   `yaml:"root"` // empty: directory of the executable
	ConfigDir   string   `yaml:"config_dir"`
	AssetsDir   string   `yaml:"assets_dir"`
	Display     string   `yaml:"display"`
	Input       string   `yaml:"input"`
	Scene       string   `yaml:"scene"`
	UILayouts   []string `yaml:"ui_layouts"`
	Screenshots string   `yaml:"screenshots"`
}

// ControlsConfig holds fly camera settings.
type ControlsConfig struct {
	FlySpeed     float32 `yaml:"fly_speed"` // units per second
	MoveX        string  `yaml:"move_x"`    // axis names from the bindings file
	MoveY        string  `yaml:"move_y"`
	MoveZ        string  `yaml:"move_z"`
	MouseLook    bool    `yaml:"mouse_look"`
	SensitivityX float32 `yaml:"sensitivity_x"`
	SensitivityY float32 `yaml:"sensitivity_y"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			ConfigDir:   "config",
			AssetsDir:   "assets",
			Display:     "display.yaml",
			Input:       "input.yaml",
			Scene:       "../my_scene.yaml",
			UILayouts:   []string{"ui/loading.yaml", "ui/fov.yaml"},
			Screenshots: "screenshots",
		},
		Controls: ControlsConfig{
			FlySpeed:     100,
			MoveX:        "move_x",
			MoveY:        "move_y",
			MoveZ:        "move_z",
			MouseLook:    true,
			SensitivityX: 0.2,
			SensitivityY: 0.2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
