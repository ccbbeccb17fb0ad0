// Copyright 2023 Gustavo C. Viegas. All rights reserved.

//go:build cgo

package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plan-systems/klog"

	"github.com/gviegas/backdrop/engine"
	"github.com/gviegas/backdrop/raster"
)

// headerHeight is the height of the sticky header bar.
const headerHeight = 28

// runWindow shows the scenes in a desktop window.
// It blocks until the window closes.
func runWindow(a *app) error {
	g := &windowGame{a: a}
	ebiten.SetWindowTitle(a.cfg.Viewer.Title)
	ebiten.SetWindowSize(a.cfg.Viewer.Width, a.cfg.Viewer.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(max(1, min(a.cfg.Engine.FrameRate, engine.MaxFrameRate)))
	return ebiten.RunGame(g)
}

// sectionKeys jump to the page sections, in order.
var sectionKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

type windowGame struct {
	a   *app
	img *ebiten.Image
}

func (g *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	step := g.a.cfg.Viewer.ScrollStep
	page := float64(g.a.viewA.Height)
	_, wy := ebiten.Wheel()
	dy := -wy * step
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		dy += step
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		dy -= step
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		dy += page
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		dy -= page
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.a.scrollTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.a.scrollTo(g.a.page.MaxScroll())
	}
	if dy != 0 {
		g.a.scrollBy(dy)
	}
	for i, k := range sectionKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.a.jumpTo(i)
		}
	}
	if g.a.step(time.Second/time.Duration(ebiten.TPS())) == 0 {
		klog.V(1).Info("window: no scene left")
		return ebiten.Termination
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	img := g.a.compose()
	b := img.Bounds()
	if g.img == nil || g.img.Bounds().Size() != b.Size() {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.img.WritePixels(img.Pix)
	screen.DrawImage(g.img, nil)

	h := g.a.header
	if h.Sticky() && !h.Hidden() {
		bg := raster.NRGBA(g.a.rend.Background(), 0.85)
		vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), headerHeight, bg, false)
		vector.StrokeLine(screen, 0, headerHeight, float32(b.Dx()), headerHeight, 1, color.NRGBA{0x64, 0xff, 0xda, 0x60}, false)
	}
	if !h.Hidden() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("scroll %.0f/%.0f  progress %.2f  %.0f fps",
			g.a.page.ScrollY(), g.a.page.MaxScroll(), g.a.ctrl.Progress(), ebiten.ActualFPS()), 8, 6)
	}

	// Scroll indicator.
	if ms := g.a.page.MaxScroll(); ms > 0 {
		y := float32(g.a.page.ScrollY()/ms) * float32(b.Dy()-40)
		vector.DrawFilledRect(screen, float32(b.Dx()-4), y, 3, 40, color.NRGBA{0xcc, 0xd6, 0xf6, 0x80}, false)
	}
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.a.resize(outsideWidth, outsideHeight)
	return g.a.viewA.Width, g.a.viewA.Height
}
