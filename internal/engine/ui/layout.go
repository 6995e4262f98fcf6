// Package ui loads text layouts from YAML files and keeps their elements
// positioned on screen.
package ui

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/flyview/internal/validation"
)

// ErrBadLayout is returned for layouts that cannot be instantiated.
var ErrBadLayout = errors.New("invalid ui layout")

// Anchor is the point of the screen an element is positioned against. The
// same point of the element is used as its pivot, so a top_right element
// with x=-10 sits 10 pixels left of the right edge.
type Anchor string

// Anchors.
const (
	TopLeft      Anchor = "top_left"
	TopMiddle    Anchor = "top_middle"
	TopRight     Anchor = "top_right"
	MiddleLeft   Anchor = "middle_left"
	Middle       Anchor = "middle"
	MiddleRight  Anchor = "middle_right"
	BottomLeft   Anchor = "bottom_left"
	BottomMiddle Anchor = "bottom_middle"
	BottomRight  Anchor = "bottom_right"
)

var anchorFractions = map[Anchor][2]float32{
	TopLeft:      {0, 0},
	TopMiddle:    {0.5, 0},
	TopRight:     {1, 0},
	MiddleLeft:   {0, 0.5},
	Middle:       {0.5, 0.5},
	MiddleRight:  {1, 0.5},
	BottomLeft:   {0, 1},
	BottomMiddle: {0.5, 1},
	BottomRight:  {1, 1},
}

func init() {
	validation.Register("anchor", func(fl validator.FieldLevel) bool {
		_, _, ok := Anchor(fl.Field().String()).Fraction()
		return ok
	})
}

// Fraction returns the anchor as a fraction of width and height.
func (a Anchor) Fraction() (fx, fy float32, ok bool) {
	f, ok := anchorFractions[a]
	return f[0], f[1], ok
}

// Element is one text element of a layout file. Positions are in logical
// pixels with y growing downwards. A zero width or height is replaced by
// the measured text size.
type Element struct {
	ID         string      `yaml:"id" validate:"required"`
	Anchor     Anchor      `yaml:"anchor" validate:"anchor"`
	X          float32     `yaml:"x"`
	Y          float32     `yaml:"y"`
	Width      float32     `yaml:"width" validate:"gte=0"`
	Height     float32     `yaml:"height" validate:"gte=0"`
	Text       string      `yaml:"text"`
	Scale      float32     `yaml:"scale" validate:"gt=0"`
	Color      *[4]float32 `yaml:"color"`
	Background *[4]float32 `yaml:"background"`
}

// Layout is a parsed layout file.
type Layout struct {
	Elements []Element `yaml:"elements" validate:"unique=ID,dive"`
}

// ParseLayout decodes and validates a layout file. Missing anchors default
// to top_left, missing scales to 1 and missing colors to white.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	for i := range l.Elements {
		el := &l.Elements[i]
		if el.Anchor == "" {
			el.Anchor = TopLeft
		}
		if el.Scale == 0 {
			el.Scale = 1
		}
		if el.Color == nil {
			el.Color = &[4]float32{1, 1, 1, 1}
		}
	}
	if err := validation.Struct(&l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadLayout, err)
	}
	return &l, nil
}
