// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package transition implements the scroll-driven
// cross-fade between two backdrop scenes.
package transition

import (
	"math"
	"time"

	"github.com/plan-systems/klog"

	"github.com/gviegas/backdrop/scene"
)

// Ease is a cubic ease-in-out curve.
// t is clamped to [0, 1].
func Ease(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Rect is the vertical extent of a page section,
// relative to the top of the viewport.
type Rect struct {
	Top, Bottom float64
}

// Height returns the height of r.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Target returns the transition progress for a section
// whose bounds are r, in a viewport of height viewportH.
// It is 0 while the section is below the viewport, 1 once
// it is above it, and linear in between.
func Target(r Rect, viewportH float64) float64 {
	band := viewportH + max(0, r.Height())
	if band <= 0 {
		if r.Top > 0 {
			return 0
		}
		return 1
	}
	return min(1, max(0, (viewportH-r.Top)/band))
}

// Mix describes how the two scenes are composited.
// Scene A fades out as scene B fades in.
// Blur is in pixels.
type Mix struct {
	OpacityA, OpacityB float64
	BlurA, BlurB       float64
}

// Compute returns the mix for the given progress.
// progress is clamped to [0, 1] and eased.
// Negative maxBlur is treated as 0.
func Compute(progress, maxBlur float64) Mix {
	e := Ease(progress)
	maxBlur = max(0, maxBlur)
	return Mix{
		OpacityA: 1 - e,
		OpacityB: e,
		BlurA:    e * maxBlur,
		BlurB:    (1 - e) * maxBlur,
	}
}

// Page is the source of scroll geometry.
type Page interface {
	// ViewportHeight returns the height of the viewport.
	ViewportHeight() float64

	// SectionBounds returns the current bounds of the named
	// section, or false if there is no such section.
	SectionBounds(name string) (Rect, bool)
}

// Config is used to configure a Controller.
type Config struct {
	// Name of the section whose position drives the
	// transition.
	//
	// Default is "publications".
	Section string `yaml:"section"`

	// Maximum blur radius in pixels.
	//
	// Default is 8.
	MaxBlur float64 `yaml:"maxBlur"`

	// Fraction of the distance to the target covered
	// per reference frame. Values outside (0, 1) snap
	// to the target.
	//
	// Default is 0.1.
	Smoothing float64 `yaml:"smoothing"`

	// Distance to the target below which progress snaps.
	//
	// Default is 0.001.
	Epsilon float64 `yaml:"epsilon"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Section:   "publications",
		MaxBlur:   8,
		Smoothing: 0.1,
		Epsilon:   0.001,
	}
}

// Controller tracks the transition progress of a page.
type Controller struct {
	cfg      Config
	page     Page
	section  string
	target   float64
	progress float64
	missing  bool
}

// NewController creates a new controller for the given
// section of page. If cfg is nil, DefaultConfig is used.
// The section argument takes precedence over
// Config.Section unless it is empty.
func NewController(page Page, section string, cfg *Config) *Controller {
	c := &Controller{cfg: DefaultConfig(), page: page}
	if cfg != nil {
		c.cfg = *cfg
	}
	c.section = section
	if c.section == "" {
		c.section = c.cfg.Section
	}
	c.update()
	c.progress = c.target
	return c
}

func (c *Controller) update() {
	if c.page == nil {
		return
	}
	r, ok := c.page.SectionBounds(c.section)
	if !ok {
		if !c.missing {
			klog.V(1).Infof("transition: no section %q", c.section)
			c.missing = true
		}
		return
	}
	c.missing = false
	c.target = Target(r, c.page.ViewportHeight())
}

// OnScroll must be called when the page scrolls.
func (c *Controller) OnScroll() { c.update() }

// OnResize must be called when the viewport changes.
func (c *Controller) OnResize() { c.update() }

// Step moves the progress toward the target by dt and
// returns the resulting mix.
func (c *Controller) Step(dt time.Duration) Mix {
	d := c.target - c.progress
	s := c.cfg.Smoothing
	if s <= 0 || s >= 1 || math.Abs(d) <= c.cfg.Epsilon {
		c.progress = c.target
	} else {
		k := 1 - math.Pow(1-s, float64(scene.Frames(dt)))
		c.progress += d * k
		if math.Abs(c.target-c.progress) <= c.cfg.Epsilon {
			c.progress = c.target
		}
	}
	return c.Mix()
}

// Frame advances the controller by one reference frame.
func (c *Controller) Frame() Mix { return c.Step(scene.FrameInterval) }

// Snap sets the progress to the target.
func (c *Controller) Snap() Mix {
	c.progress = c.target
	return c.Mix()
}

// Mix returns the mix for the current progress.
func (c *Controller) Mix() Mix { return Compute(c.progress, c.cfg.MaxBlur) }

// Progress returns the current (smoothed) progress.
func (c *Controller) Progress() float64 { return c.progress }

// Target returns the progress the controller is
// moving toward.
func (c *Controller) Target() float64 { return c.target }

// Section returns the name of the tracked section.
func (c *Controller) Section() string { return c.section }
