// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package config loads the configuration of the
// backdrop viewers from YAML files.
package config

import (
	"bytes"
	"io"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gviegas/backdrop/engine"
	"github.com/gviegas/backdrop/helix"
	"github.com/gviegas/backdrop/lattice"
	"github.com/gviegas/backdrop/raster"
	"github.com/gviegas/backdrop/transition"
)

// ErrBadColor means that a color is not a valid hex
// color.
var ErrBadColor = errors.New("config: bad color")

// ErrBadValue means that a numeric field is out of range.
var ErrBadValue = errors.New("config: bad value")

// Viewer configures the surface the scenes are shown on.
type Viewer struct {
	// Size of the window (or of the images, when
	// headless).
	//
	// Default is 800x600.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Window title.
	//
	// Default is "backdrop".
	Title string `yaml:"title"`

	// Pixels scrolled per wheel notch or key press.
	//
	// Default is 60.
	ScrollStep float64 `yaml:"scrollStep"`

	// Layout of the virtual page that is scrolled.
	//
	// Default is transition.DefaultSections().
	Sections []transition.Section `yaml:"sections"`
}

// Config aggregates the configuration of every package.
type Config struct {
	Engine     engine.Config     `yaml:"engine"`
	Lattice    lattice.Config    `yaml:"lattice"`
	Helix      helix.Config      `yaml:"helix"`
	Transition transition.Config `yaml:"transition"`
	Raster     raster.Config     `yaml:"raster"`
	Viewer     Viewer            `yaml:"viewer"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Engine:     engine.DefaultConfig(),
		Lattice:    lattice.DefaultConfig(),
		Helix:      helix.DefaultConfig(),
		Transition: transition.DefaultConfig(),
		Raster:     raster.DefaultConfig(),
		Viewer: Viewer{
			Width:      800,
			Height:     600,
			Title:      "backdrop",
			ScrollStep: 60,
			Sections:   transition.DefaultSections(),
		},
	}
}

// Decode decodes YAML from r over the default
// configuration and validates the result.
// Fields missing from r keep their default values.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "config: decode")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the named YAML file.
// An empty name yields the default configuration.
func Load(name string) (*Config, error) {
	if name == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	c, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", name)
	}
	return c, nil
}

// Encode writes c into w as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "config: encode")
	}
	return errors.Wrap(enc.Close(), "config: encode")
}

func checkColor(field, s string) error {
	if _, err := colorful.Hex(s); err != nil {
		return errors.Wrapf(ErrBadColor, "%s: %q", field, s)
	}
	return nil
}

func checkPositive[T int | float32 | float64](field string, v T) error {
	if v <= 0 {
		return errors.Wrapf(ErrBadValue, "%s must be positive, have %v", field, v)
	}
	return nil
}

// Validate checks that c is usable.
// Colors must be valid hex colors and sizes must
// be positive.
func (c *Config) Validate() error {
	l, h := &c.Lattice, &c.Helix
	colors := [...][2]string{
		{"lattice.neuronColor", l.NeuronColor},
		{"lattice.edgeColor", l.EdgeColor},
		{"lattice.pulseColor", l.PulseColor},
		{"helix.backboneColor", h.BackboneColor},
		{"helix.palette.a", h.Palette.A},
		{"helix.palette.t", h.Palette.T},
		{"helix.palette.g", h.Palette.G},
		{"helix.palette.c", h.Palette.C},
		{"raster.background", c.Raster.Background},
	}
	for _, x := range colors {
		if err := checkColor(x[0], x[1]); err != nil {
			return err
		}
	}
	for _, err := range [...]error{
		checkPositive("engine.frameRate", c.Engine.FrameRate),
		checkPositive("lattice.spacing", l.Spacing),
		checkPositive("lattice.threshold", l.Threshold),
		checkPositive("lattice.fov", l.FOV),
		checkPositive("helix.basePairs", h.BasePairs),
		checkPositive("helix.radius", h.Radius),
		checkPositive("helix.strandSamples", h.StrandSamples),
		checkPositive("helix.fov", h.FOV),
		checkPositive("viewer.width", c.Viewer.Width),
		checkPositive("viewer.height", c.Viewer.Height),
	} {
		if err != nil {
			return err
		}
	}
	if l.Extent < 0 || l.MaxFiring < 0 || l.Cooldown < 0 {
		return errors.Wrap(ErrBadValue, "lattice: extent, maxFiring and cooldown must not be negative")
	}
	if l.FireInterval <= 0 {
		return errors.Wrapf(ErrBadValue, "lattice.fireInterval must be positive, have %v", l.FireInterval)
	}
	if h.Turns == 0 && h.PairsPerTurn <= 0 {
		return errors.Wrap(ErrBadValue, "helix: either turns or pairsPerTurn must be set")
	}
	if c.Transition.MaxBlur < 0 {
		return errors.Wrapf(ErrBadValue, "transition.maxBlur must not be negative, have %v", c.Transition.MaxBlur)
	}
	return nil
}
