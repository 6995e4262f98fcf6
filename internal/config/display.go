package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/flyview/internal/validation"
)

// DisplayConfig describes the window, read from display.yaml.
type DisplayConfig struct {
	Title         string  `yaml:"title"`
	Dimensions    *[2]int `yaml:"dimensions" validate:"omitempty,dive,gt=0"`
	MinDimensions *[2]int `yaml:"min_dimensions" validate:"omitempty,dive,gt=0"`
	MaxDimensions *[2]int `yaml:"max_dimensions" validate:"omitempty,dive,gt=0"`
	Fullscreen    bool    `yaml:"fullscreen"`
	Resizable     bool    `yaml:"resizable"`
	VSync         bool    `yaml:"vsync"`

	ClearColor *[4]float32 `yaml:"clear_color"` // default black
}

// DefaultDisplay returns the window used when display.yaml leaves fields out.
func DefaultDisplay() *DisplayConfig {
	return &DisplayConfig{
		Title:      "flyview",
		Dimensions: &[2]int{1280, 720},
		Resizable:  true,
		VSync:      true,
	}
}

// Size returns the requested window size.
func (d *DisplayConfig) Size() (int, int) {
	if d.Dimensions == nil {
		return 1280, 720
	}
	return d.Dimensions[0], d.Dimensions[1]
}

// Clear returns the window clear color.
func (d *DisplayConfig) Clear() [4]float32 {
	if d.ClearColor == nil {
		return [4]float32{0, 0, 0, 1}
	}
	return *d.ClearColor
}

// LoadDisplay reads a display file over the defaults and applies CLI flags.
func LoadDisplay(path string) (*DisplayConfig, error) {
	d := DefaultDisplay()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading display config: %w", err)
	}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("parsing display config %s: %w", path, err)
	}
	if err := validation.Struct(d); err != nil {
		return nil, fmt.Errorf("display config %s: %w", path, err)
	}

	applyDisplayFlags(d)
	return d, nil
}
