// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package helix

import (
	"fmt"
	"strings"
)

// Mode selects how the backbones are rendered.
// Base pairs are always a sphere per base and a bond
// between them.
type Mode int

const (
	// Discrete renders each backbone as a thin polyline
	// of BackboneWidth, dashed when Config.Dashed is set.
	Discrete Mode = iota
	// Tube renders each backbone as a continuous tube
	// of radius TubeRadius. Dashed is ignored.
	Tube
)

func (m Mode) String() string {
	switch m {
	case Discrete:
		return "discrete"
	case Tube:
		return "tube"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "discrete", "":
		*m = Discrete
	case "tube":
		*m = Tube
	default:
		return fmt.Errorf("helix: unknown mode %q", b)
	}
	return nil
}

// Palette maps each nucleotide to a hex color.
type Palette struct {
	A string `yaml:"a"`
	T string `yaml:"t"`
	G string `yaml:"g"`
	C string `yaml:"c"`
}

// Hex returns the color of b.
func (p *Palette) Hex(b Base) string {
	switch b {
	case A:
		return p.A
	case T:
		return p.T
	case G:
		return p.G
	default:
		return p.C
	}
}

// Config is used to configure a helix Scene.
type Config struct {
	// Number of base pairs.
	// Values less than 2 are raised to 2.
	//
	// Default is 42 (about four turns).
	BasePairs int `yaml:"basePairs"`

	// Distance along the axis between two
	// consecutive base pairs.
	//
	// Default is 1.
	Rise float32 `yaml:"rise"`

	// Helix radius.
	//
	// Default is 4.
	Radius float32 `yaml:"radius"`

	// Number of turns over the whole length.
	// Zero derives it from PairsPerTurn.
	//
	// Default is 0.
	Turns float32 `yaml:"turns"`

	// Base pairs per turn, used when Turns is zero.
	//
	// Default is 10.5 (B-DNA).
	PairsPerTurn float32 `yaml:"pairsPerTurn"`

	// Number of points sampled along each backbone.
	// Values less than 2 are raised to 2.
	//
	// Default is 200.
	StrandSamples int `yaml:"strandSamples"`

	// Base colors.
	//
	// Default is yellow (A), blue (T), green (G)
	// and red (C).
	Palette Palette `yaml:"palette"`

	// Rendering of backbones.
	//
	// Default is Tube.
	Mode Mode `yaml:"mode"`

	// Radius of the backbone tubes in Tube mode.
	//
	// Default is 0.15.
	TubeRadius float32 `yaml:"tubeRadius"`

	// Whether Discrete backbones are drawn dashed.
	//
	// Default is false.
	Dashed bool `yaml:"dashed"`

	// Bound of the vertical undulation of rungs.
	//
	// Default is 0.15.
	Undulation float32 `yaml:"undulation"`

	// Angular frequency of the undulation relative
	// to the phase.
	//
	// Default is 1.5.
	Wave float32 `yaml:"wave"`

	// Phase advance per reference frame.
	//
	// Default is 0.01.
	PhaseStep float32 `yaml:"phaseStep"`

	// Rotation around the axis per unit of phase,
	// and amplitudes of the x/z tilt.
	//
	// Default is 0.3, 0.18 and 0.08.
	Spin  float32 `yaml:"spin"`
	TiltX float32 `yaml:"tiltX"`
	TiltZ float32 `yaml:"tiltZ"`

	// Appearance of backbones, bases and bonds.
	BackboneWidth   float32 `yaml:"backboneWidth"`
	BackboneColor   string  `yaml:"backboneColor"`
	BackboneOpacity float32 `yaml:"backboneOpacity"`
	BaseRadius      float32 `yaml:"baseRadius"`
	BaseOpacity     float32 `yaml:"baseOpacity"`
	BondWidth       float32 `yaml:"bondWidth"`
	BondOpacity     float32 `yaml:"bondOpacity"`

	// Camera vertical field of view (degrees) and
	// distance from the origin.
	//
	// Default is 60 and 30.
	FOV      float32 `yaml:"fov"`
	Distance float32 `yaml:"distance"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BasePairs:     42,
		Rise:          1,
		Radius:        4,
		PairsPerTurn:  10.5,
		StrandSamples: 200,
		Palette: Palette{
			A: "#edd382",
			T: "#717ec3",
			G: "#85ffc7",
			C: "#ff6f59",
		},
		Mode:            Tube,
		TubeRadius:      0.15,
		Undulation:      0.15,
		Wave:            1.5,
		PhaseStep:       0.01,
		Spin:            0.3,
		TiltX:           0.18,
		TiltZ:           0.08,
		BackboneWidth:   0.08,
		BackboneColor:   "#ffffff",
		BackboneOpacity: 0.28,
		BaseRadius:      0.35,
		BaseOpacity:     0.6,
		BondWidth:       0.16,
		BondOpacity:     0.22,
		FOV:             60,
		Distance:        30,
	}
}
