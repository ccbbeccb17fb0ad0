// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package lattice

import (
	"time"
)

// Config is used to configure a lattice Scene.
type Config struct {
	// Half the number of neurons along each axis,
	// not counting the center. The grid spans
	// [-Extent, Extent] on every axis.
	//
	// Default is 2 (125 neurons).
	Extent int `yaml:"extent"`

	// Distance between adjacent neurons.
	//
	// Default is 1.
	Spacing float32 `yaml:"spacing"`

	// Two neurons are connected if and only if
	// their distance is less than Threshold.
	//
	// Default is 2.
	Threshold float32 `yaml:"threshold"`

	// Rotation of the cluster per reference frame,
	// in radians.
	//
	// Default is 0.0005 (x) and 0.001 (y).
	RotX float32 `yaml:"rotX"`
	RotY float32 `yaml:"rotY"`

	// Progress of a firing edge per reference frame.
	//
	// Default is 0.03.
	PulseStep float32 `yaml:"pulseStep"`

	// How often edges are selected for firing.
	//
	// Default is 1s.
	FireInterval time.Duration `yaml:"fireInterval"`

	// The maximum number of edges firing at once.
	//
	// Default is 10.
	MaxFiring int `yaml:"maxFiring"`

	// The number of most recently fired edges that
	// are not eligible for firing. Zero disables it.
	//
	// Default is 20.
	Cooldown int `yaml:"cooldown"`

	// Whether pulse markers are recycled rather than
	// discarded when their edge finishes firing.
	//
	// Default is true.
	PoolMarkers bool `yaml:"poolMarkers"`

	// Appearance.
	//
	// Defaults are taken from the portfolio page:
	// dark teal neurons, aquamarine edges and pale
	// yellow pulses.
	NeuronRadius  float32 `yaml:"neuronRadius"`
	NeuronColor   string  `yaml:"neuronColor"`
	NeuronOpacity float32 `yaml:"neuronOpacity"`
	EdgeWidth     float32 `yaml:"edgeWidth"`
	EdgeColor     string  `yaml:"edgeColor"`
	EdgeOpacity   float32 `yaml:"edgeOpacity"`
	FiringOpacity float32 `yaml:"firingOpacity"`
	PulseSize     float32 `yaml:"pulseSize"`
	PulseColor    string  `yaml:"pulseColor"`

	// Camera vertical field of view (degrees) and
	// distance from the origin.
	//
	// Default is 75 and 5.
	FOV      float32 `yaml:"fov"`
	Distance float32 `yaml:"distance"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Extent:        2,
		Spacing:       1,
		Threshold:     2,
		RotX:          0.0005,
		RotY:          0.001,
		PulseStep:     0.03,
		FireInterval:  time.Second,
		MaxFiring:     10,
		Cooldown:      20,
		PoolMarkers:   true,
		NeuronRadius:  0.05,
		NeuronColor:   "#1e3a36",
		NeuronOpacity: 0.45,
		EdgeWidth:     0.01,
		EdgeColor:     "#64ffda",
		EdgeOpacity:   0.08,
		FiringOpacity: 0.35,
		PulseSize:     0.25,
		PulseColor:    "#888866",
		FOV:           75,
		Distance:      5,
	}
}
