// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package transition

import (
	"math"
	"testing"
)

func TestEase(t *testing.T) {
	for _, x := range [...]struct {
		t, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.5},
		{0.75, 0.9375},
		{1, 1},
		{2, 1},
	} {
		if e := Ease(x.t); math.Abs(e-x.want) > 1e-12 {
			t.Fatalf("Ease(%v)\nhave %v\nwant %v", x.t, e, x.want)
		}
	}
	prev := Ease(0)
	for i := 1; i <= 1000; i++ {
		e := Ease(float64(i) / 1000)
		if e < prev {
			t.Fatalf("Ease: not monotonic at %v", float64(i)/1000)
		}
		if e-prev > 0.004 {
			t.Fatalf("Ease: jump of %v at %v", e-prev, float64(i)/1000)
		}
		prev = e
	}
}

func TestCompute(t *testing.T) {
	m := Compute(0, 10)
	if m.OpacityA != 1 || m.OpacityB != 0 || m.BlurA != 0 || m.BlurB != 10 {
		t.Fatalf("Compute(0, 10)\nhave %+v\nwant {1 0 0 10}", m)
	}
	m = Compute(1, 10)
	if m.OpacityA != 0 || m.OpacityB != 1 || m.BlurA != 10 || m.BlurB != 0 {
		t.Fatalf("Compute(1, 10)\nhave %+v\nwant {0 1 10 0}", m)
	}
	m = Compute(0.5, 10)
	if m.OpacityA+m.OpacityB != 1 {
		t.Fatalf("Compute(0.5, 10): OpacityA+OpacityB\nhave %v\nwant 1", m.OpacityA+m.OpacityB)
	}
	if m.BlurA != 5 || m.BlurB != 5 {
		t.Fatalf("Compute(0.5, 10): blur\nhave %v %v\nwant 5 5", m.BlurA, m.BlurB)
	}
	for i := -10; i <= 110; i++ {
		p := float64(i) / 100
		m := Compute(p, 8)
		if m.OpacityA < 0 || m.OpacityA > 1 || m.OpacityB < 0 || m.OpacityB > 1 {
			t.Fatalf("Compute(%v, 8): opacity out of range: %+v", p, m)
		}
		if m.BlurA < 0 || m.BlurA > 8 || m.BlurB < 0 || m.BlurB > 8 {
			t.Fatalf("Compute(%v, 8): blur out of range: %+v", p, m)
		}
		if s := m.BlurA + m.BlurB; math.Abs(s-8) > 1e-9 {
			t.Fatalf("Compute(%v, 8): BlurA+BlurB\nhave %v\nwant 8", p, s)
		}
	}
	if m := Compute(0.3, -4); m.BlurA != 0 || m.BlurB != 0 {
		t.Fatalf("Compute(0.3, -4): blur\nhave %v %v\nwant 0 0", m.BlurA, m.BlurB)
	}
}

func TestTarget(t *testing.T) {
	for _, x := range [...]struct {
		r    Rect
		h    float64
		want float64
	}{
		{Rect{700, 1700}, 600, 0},
		{Rect{600, 1600}, 600, 0},
		{Rect{-200, 800}, 600, 0.5},
		{Rect{-1000, 0}, 600, 1},
		{Rect{-2000, -1000}, 600, 1},
		{Rect{200, 200}, 600, 400.0 / 600},
		{Rect{10, 20}, 0, 0},
		{Rect{-20, -10}, 0, 1},
	} {
		if p := Target(x.r, x.h); math.Abs(p-x.want) > 1e-12 {
			t.Fatalf("Target(%+v, %v)\nhave %v\nwant %v", x.r, x.h, p, x.want)
		}
	}
}

func TestController(t *testing.T) {
	page := NewVirtualPage(600, DefaultSections()...)
	c := NewController(page, "", nil)
	if c.Section() != "publications" {
		t.Fatalf("Controller.Section\nhave %q\nwant \"publications\"", c.Section())
	}
	if c.Progress() != 0 || c.Target() != 0 {
		t.Fatalf("NewController: progress\nhave %v/%v\nwant 0/0", c.Progress(), c.Target())
	}

	page.ScrollTo(1900)
	c.OnScroll()
	if c.Target() != 0.5 {
		t.Fatalf("Controller.OnScroll: Target\nhave %v\nwant 0.5", c.Target())
	}
	if c.Progress() != 0 {
		t.Fatalf("Controller.OnScroll: Progress\nhave %v\nwant 0", c.Progress())
	}
	c.Frame()
	if p := c.Progress(); math.Abs(p-0.05) > 1e-9 {
		t.Fatalf("Controller.Frame: Progress\nhave %v\nwant 0.05", p)
	}
	prev := c.Progress()
	for range 200 {
		m := c.Frame()
		p := c.Progress()
		if p < prev || p > 0.5 {
			t.Fatalf("Controller.Frame: Progress went from %v to %v", prev, p)
		}
		if m != Compute(p, DefaultConfig().MaxBlur) {
			t.Fatalf("Controller.Frame\nhave %+v\nwant %+v", m, Compute(p, DefaultConfig().MaxBlur))
		}
		prev = p
	}
	if c.Progress() != 0.5 {
		t.Fatalf("Controller.Frame (converged): Progress\nhave %v\nwant 0.5", c.Progress())
	}

	page.ScrollTo(0)
	c.OnScroll()
	c.Frame()
	if p := c.Progress(); p >= 0.5 || p < 0.4 {
		t.Fatalf("Controller.Frame (back): Progress\nhave %v\nwant in [0.4, 0.5)", p)
	}
	if m := c.Snap(); c.Progress() != 0 || m.OpacityA != 1 {
		t.Fatalf("Controller.Snap\nhave %v %+v\nwant 0", c.Progress(), m)
	}

	page.Resize(4000)
	c.OnResize()
	if c.Target() != 2300.0/5000 {
		t.Fatalf("Controller.OnResize: Target\nhave %v\nwant %v", c.Target(), 2300.0/5000)
	}
}

func TestControllerSnap(t *testing.T) {
	page := NewVirtualPage(600, DefaultSections()...)
	page.ScrollTo(2600)
	cfg := DefaultConfig()
	cfg.Smoothing = 0
	c := NewController(page, "publications", &cfg)
	if c.Progress() != c.Target() {
		t.Fatalf("NewController: Progress\nhave %v\nwant %v", c.Progress(), c.Target())
	}
	page.ScrollTo(1900)
	c.OnScroll()
	c.Frame()
	if c.Progress() != 0.5 {
		t.Fatalf("Controller.Frame (no smoothing): Progress\nhave %v\nwant 0.5", c.Progress())
	}
}

func TestControllerMissing(t *testing.T) {
	page := NewVirtualPage(600, DefaultSections()...)
	page.ScrollTo(1900)
	c := NewController(page, "publications", nil)
	want := c.Target()
	c.section = "nowhere"
	page.ScrollTo(0)
	c.OnScroll()
	if c.Target() != want {
		t.Fatalf("Controller.OnScroll (missing section): Target\nhave %v\nwant %v", c.Target(), want)
	}
	if c := NewController(nil, "x", nil); c.Frame() != Compute(0, DefaultConfig().MaxBlur) {
		t.Fatal("Controller.Frame (nil page): should stay at 0")
	}
}

func TestHeader(t *testing.T) {
	h := NewHeader()
	for _, x := range [...]struct {
		y              float64
		sticky, hidden bool
	}{
		{0, false, false},
		{50, false, false},
		{100, false, false},
		{150, true, true},
		{300, true, true},
		{250, true, false},
		{250, true, false},
		{260, true, true},
		{80, false, false},
		{120, true, true},
	} {
		sticky, hidden := h.Update(x.y)
		if sticky != x.sticky || hidden != x.hidden {
			t.Fatalf("Header.Update(%v)\nhave %t %t\nwant %t %t", x.y, sticky, hidden, x.sticky, x.hidden)
		}
		if h.Sticky() != sticky || h.Hidden() != hidden {
			t.Fatal("Header: Sticky/Hidden disagree with Update")
		}
	}
}

func TestVirtualPage(t *testing.T) {
	p := NewVirtualPage(600, DefaultSections()...)
	if h := p.Height(); h != 3200 {
		t.Fatalf("VirtualPage.Height\nhave %v\nwant 3200", h)
	}
	p.ScrollTo(-5)
	if p.ScrollY() != 0 {
		t.Fatalf("VirtualPage.ScrollTo(-5)\nhave %v\nwant 0", p.ScrollY())
	}
	p.ScrollTo(1e6)
	if p.ScrollY() != 2600 {
		t.Fatalf("VirtualPage.ScrollTo(1e6)\nhave %v\nwant 2600", p.ScrollY())
	}
	p.ScrollBy(-600)
	if r, ok := p.SectionBounds("publications"); !ok || r != (Rect{-300, 700}) {
		t.Fatalf("VirtualPage.SectionBounds\nhave %v %t\nwant {-300 700} true", r, ok)
	}
	if _, ok := p.SectionBounds("blog"); ok {
		t.Fatal("VirtualPage.SectionBounds(blog)\nhave true\nwant false")
	}
	if ss := p.Sections(); len(ss) != 4 || ss[2].Name != "publications" {
		t.Fatalf("VirtualPage.Sections\nhave %v\nwant DefaultSections()", ss)
	}
	if !p.ScrollToSection("about", DefaultStickyAfter) || p.ScrollY() != 700 {
		t.Fatalf("VirtualPage.ScrollToSection\nhave %v\nwant 700", p.ScrollY())
	}
	p.Resize(4000)
	if p.ScrollY() != 0 || p.ViewportHeight() != 4000 {
		t.Fatalf("VirtualPage.Resize(4000)\nhave %v %v\nwant 0 4000", p.ScrollY(), p.ViewportHeight())
	}
}
