package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagScene       = flag.String("scene", "", "Scene file, relative to the assets directory")
	flagAssets      = flag.String("assets", "", "Assets directory")
	flagSpeed       = flag.Float64("speed", 0, "Fly camera speed in units per second")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagWriteConfig = flag.Bool("write-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigRequested reports whether --write-config was given.
func WriteConfigRequested() bool {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Paths.Scene = *flagScene
	}
	if *flagAssets != "" {
		cfg.Paths.AssetsDir = *flagAssets
	}
	if *flagSpeed > 0 {
		cfg.Controls.FlySpeed = float32(*flagSpeed)
	}
}

// applyDisplayFlags applies CLI flag overrides to the display config.
func applyDisplayFlags(d *DisplayConfig) {
	if *flagWindowed {
		d.Fullscreen = false
	}
	if *flagFullscreen {
		d.Fullscreen = true
	}
	if *flagWidth > 0 || *flagHeight > 0 {
		w, h := d.Size()
		if *flagWidth > 0 {
			w = *flagWidth
		}
		if *flagHeight > 0 {
			h = *flagHeight
		}
		d.Dimensions = &[2]int{w, h}
	}
}
