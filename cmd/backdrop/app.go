// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"image"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/gviegas/backdrop/config"
	"github.com/gviegas/backdrop/engine"
	"github.com/gviegas/backdrop/helix"
	"github.com/gviegas/backdrop/lattice"
	"github.com/gviegas/backdrop/raster"
	"github.com/gviegas/backdrop/scene"
	"github.com/gviegas/backdrop/transition"
)

// app holds both scenes and everything that feeds them.
// Scene A is the lattice, scene B is the helix.
type app struct {
	cfg  *config.Config
	loop *engine.Loop

	viewA, viewB scene.Viewport
	lcA, lcB     scene.Lifecycle
	lattice      *lattice.Scene
	helix        *helix.Scene

	page   *transition.VirtualPage
	ctrl   *transition.Controller
	header *transition.Header
	mix    transition.Mix

	rend           *raster.Renderer
	frameA, frameB scene.Frame
}

func newApp(cfg *config.Config, seed int64, width, height int) *app {
	a := &app{
		cfg:  cfg,
		loop: engine.New(&cfg.Engine),
		rend: raster.New(&cfg.Raster),
	}
	a.viewA = scene.Viewport{Width: width, Height: height}
	a.viewB = a.viewA
	a.lattice = lattice.New(&a.viewA, &a.lcA, a.loop, rand.New(rand.NewSource(seed)), &cfg.Lattice)
	a.helix = helix.New(&a.viewB, &a.lcB, rand.New(rand.NewSource(seed+1)), &cfg.Helix)

	a.page = transition.NewVirtualPage(float64(height), cfg.Viewer.Sections...)
	a.ctrl = transition.NewController(a.page, cfg.Transition.Section, &cfg.Transition)
	a.header = transition.NewHeader()
	a.mix = a.ctrl.Mix()
	return a
}

// init initializes both scenes and adds them to the loop.
// It fails only if neither scene could be initialized.
func (a *app) init() error {
	var n int
	if a.lattice.Init() {
		a.loop.Add(a.lattice)
		n++
	}
	if a.helix.Init() {
		a.loop.Add(a.helix)
		n++
	}
	if n == 0 {
		return errors.Errorf("no scene could be initialized on a %dx%d surface", a.viewA.Width, a.viewA.Height)
	}
	klog.V(1).Infof("backdrop: %d scene(s) running", n)
	return nil
}

// resize propagates a new surface size to the scenes
// and to the page.
func (a *app) resize(width, height int) {
	if a.resizeSurface(width, height) {
		a.page.Resize(float64(height))
		a.ctrl.OnResize()
	}
}

// resizeSurface propagates a new surface size to the
// scenes only. The page keeps its geometry.
func (a *app) resizeSurface(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == a.viewA.Width && height == a.viewA.Height {
		return false
	}
	a.viewA.Width, a.viewA.Height = width, height
	a.viewB.Width, a.viewB.Height = width, height
	a.lattice.Resize(width, height)
	a.helix.Resize(width, height)
	klog.V(2).Infof("backdrop: resized to %dx%d", width, height)
	return true
}

// scrollTo sets the page scroll offset.
func (a *app) scrollTo(y float64) {
	a.page.ScrollTo(y)
	a.ctrl.OnScroll()
	a.header.Update(a.page.ScrollY())
}

func (a *app) scrollBy(dy float64) { a.scrollTo(a.page.ScrollY() + dy) }

// jumpTo scrolls to the i-th section of the page, leaving
// room for the sticky header. It returns false if there
// is no such section.
func (a *app) jumpTo(i int) bool {
	ss := a.page.Sections()
	if i < 0 || i >= len(ss) {
		return false
	}
	a.page.ScrollToSection(ss[i].Name, a.header.StickyAfter)
	a.scrollTo(a.page.ScrollY())
	klog.V(2).Infof("backdrop: jumped to section %q", ss[i].Name)
	return true
}

// step advances the scenes and the transition by dt.
// It returns the number of scenes still running.
func (a *app) step(dt time.Duration) int {
	n := a.loop.Step(dt)
	a.mix = a.ctrl.Step(dt)
	return n
}

// draw collects the primitives of both scenes.
func (a *app) draw() {
	a.frameA.Reset()
	a.frameB.Reset()
	a.lattice.Draw(&a.frameA)
	a.helix.Draw(&a.frameB)
}

// layers renders both scenes into separate images.
func (a *app) layers() []raster.Layer {
	a.draw()
	var ls []raster.Layer
	if sc := a.lattice.Scene(); sc != nil && a.lcA.Initialized() {
		ls = append(ls, raster.Layer{
			Image:   a.rend.Render(sc, &a.frameA),
			Opacity: a.mix.OpacityA,
			Blur:    a.mix.BlurA,
		})
	}
	if sc := a.helix.Scene(); sc != nil && a.lcB.Initialized() {
		ls = append(ls, raster.Layer{
			Image:   a.rend.Render(sc, &a.frameB),
			Opacity: a.mix.OpacityB,
			Blur:    a.mix.BlurB,
		})
	}
	return ls
}

// compose renders the current frame.
func (a *app) compose() *image.RGBA {
	return a.rend.Compose(a.viewA.Width, a.viewA.Height, a.layers()...)
}

// close stops both scenes.
func (a *app) close() {
	a.viewA.Hidden = true
	a.viewB.Hidden = true
	a.lattice.Close()
	a.helix.Close()
	a.loop.Step(0)
}
