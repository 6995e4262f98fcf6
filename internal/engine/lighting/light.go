// Package lighting describes scene lights and packs them for shader upload.
package lighting

import (
	"errors"
	gomath "math"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/flyview/internal/validation"
)

// ErrLightKind is returned when a light does not name exactly one kind.
var ErrLightKind = errors.New("light must have exactly one of point, directional or spot")

func init() {
	validation.Sentinel(ErrLightKind, "Light.Point", "Light.Directional")
}

// PointLight shines in every direction from the entity's position.
type PointLight struct {
	Color      [3]float32 `yaml:"color"`
	Intensity  float32    `yaml:"intensity"`
	Radius     float32    `yaml:"radius" validate:"gt=0"`
	Smoothness float32    `yaml:"smoothness"`
}

// DirectionalLight shines along Direction everywhere, like the sun.
type DirectionalLight struct {
	Color     [3]float32 `yaml:"color"`
	Direction [3]float32 `yaml:"direction"`
	Intensity float32    `yaml:"intensity"`
}

// SpotLight is a cone of light from the entity's position. Angle is the
// full cone angle in radians.
type SpotLight struct {
	Color      [3]float32 `yaml:"color"`
	Direction  [3]float32 `yaml:"direction"`
	Angle      float32    `yaml:"angle" validate:"gt=0,lt=3.14159265"`
	Range      float32    `yaml:"range"`
	Intensity  float32    `yaml:"intensity"`
	Smoothness float32    `yaml:"smoothness"`
}

// Light is the light component. Exactly one field is set.
type Light struct {
	Point       *PointLight       `yaml:"point,omitempty" validate:"required_without_all=Directional Spot,excluded_with=Directional Spot"`
	Directional *DirectionalLight `yaml:"directional,omitempty" validate:"excluded_with=Spot"`
	Spot        *SpotLight        `yaml:"spot,omitempty"`
}

// Validate checks that exactly one kind is set and that its values are usable.
func (l *Light) Validate() error {
	return validation.Struct(l)
}

func white() [3]float32 { return [3]float32{1, 1, 1} }

// DefaultPointLight returns the values used for omitted point light fields.
func DefaultPointLight() PointLight {
	return PointLight{Color: white(), Intensity: 10, Radius: 10, Smoothness: 4}
}

// DefaultDirectionalLight returns the values used for omitted directional light fields.
func DefaultDirectionalLight() DirectionalLight {
	return DirectionalLight{Color: white(), Direction: [3]float32{-1, -1, -1}, Intensity: 1}
}

// DefaultSpotLight returns the values used for omitted spot light fields.
func DefaultSpotLight() SpotLight {
	return SpotLight{
		Color:      white(),
		Direction:  [3]float32{0, -1, 0},
		Angle:      gomath.Pi / 3,
		Range:      10,
		Intensity:  10,
		Smoothness: 4,
	}
}

// UnmarshalYAML fills omitted fields with defaults.
func (p *PointLight) UnmarshalYAML(node *yaml.Node) error {
	type raw PointLight
	v := raw(DefaultPointLight())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = PointLight(v)
	return nil
}

// UnmarshalYAML fills omitted fields with defaults.
func (d *DirectionalLight) UnmarshalYAML(node *yaml.Node) error {
	type raw DirectionalLight
	v := raw(DefaultDirectionalLight())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*d = DirectionalLight(v)
	return nil
}

// UnmarshalYAML fills omitted fields with defaults.
func (s *SpotLight) UnmarshalYAML(node *yaml.Node) error {
	type raw SpotLight
	v := raw(DefaultSpotLight())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*s = SpotLight(v)
	return nil
}
