// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements the frame loop that animates
// the backdrop scenes.
package engine

import (
	"time"
)

const (
	// The maximum frame rate.
	MaxFrameRate = 240

	dflFrameRate = 60
	dflMaxDelta  = 100 * time.Millisecond
)

// Config is used to configure the engine.
type Config struct {
	// The number of frames per second that Run
	// attempts to produce.
	// Values outside of [1, MaxFrameRate] are
	// clamped.
	//
	// Default is 60.
	FrameRate int `yaml:"frameRate"`

	// The longest frame delta passed to animators.
	// Longer stalls (e.g., a suspended process) are
	// clamped to this value so animations do not
	// jump.
	//
	// Default is 100ms.
	MaxDelta time.Duration `yaml:"maxDelta"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FrameRate: dflFrameRate,
		MaxDelta:  dflMaxDelta,
	}
}

// FrameInterval returns the duration of a frame
// at c.FrameRate.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(1, min(c.FrameRate, MaxFrameRate)))
}
