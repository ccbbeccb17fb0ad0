// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/gviegas/backdrop/gltf"
	"github.com/gviegas/backdrop/raster"
	"github.com/gviegas/backdrop/scene"
)

type headlessOpts struct {
	frames   int
	out      string
	scrollTo float64
	gltf     string
}

// runHeadless steps the scenes for a fixed number of
// frames at the reference frame rate while scrolling
// the page from the top to opts.scrollTo.
// Frames are written as PNG files when opts.out is set.
func runHeadless(a *app, opts headlessOpts) error {
	if opts.out != "" {
		if err := os.MkdirAll(opts.out, 0o755); err != nil {
			return errors.Wrap(err, "headless")
		}
	}
	target := opts.scrollTo
	if target < 0 {
		target = a.page.MaxScroll()
	}
	fg := scene.MustColor("#ccd6f6")
	n := max(1, opts.frames)
	for i := range n {
		t := 1.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		a.scrollTo(target * t)
		if a.step(scene.FrameInterval) == 0 {
			klog.Warningf("headless: no scene left at frame %d", i)
			break
		}
		if opts.out == "" {
			continue
		}
		img := a.compose()
		label := fmt.Sprintf("scroll %.0f  progress %.2f", a.page.ScrollY(), a.ctrl.Progress())
		if a.header.Sticky() {
			label += "  [sticky]"
		}
		if err := a.rend.Label(img, 8, 8, label, fg); err != nil {
			return err
		}
		name := filepath.Join(opts.out, fmt.Sprintf("frame_%04d.png", i))
		if err := raster.SavePNG(name, img); err != nil {
			return err
		}
		klog.V(2).Infof("headless: wrote %s", name)
	}
	klog.V(1).Infof("headless: %d frame(s), final mix %+v", n, a.mix)

	if opts.gltf != "" {
		return exportGLTF(a, opts.gltf)
	}
	return nil
}

// exportGLTF writes the current frame of both scenes
// as a glTF asset. A .glb extension selects the binary
// container.
func exportGLTF(a *app, name string) (err error) {
	a.draw()
	b := gltf.NewBuilder()
	for _, x := range [...]struct {
		name  string
		frame *scene.Frame
	}{
		{"lattice", &a.frameA},
		{"helix", &a.frameB},
	} {
		if err := b.AddFrame(x.name, x.frame); err != nil {
			if errors.Is(err, gltf.ErrEmptyFrame) {
				klog.Warningf("headless: %v", err)
				continue
			}
			return err
		}
	}
	if b.Len() == 0 {
		return errors.Wrap(gltf.ErrEmptyFrame, "headless: nothing to export")
	}
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "headless")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "headless")
		}
	}()
	if strings.EqualFold(filepath.Ext(name), ".glb") {
		err = b.WriteGLB(f)
	} else {
		err = b.Encode(f)
	}
	if err == nil {
		klog.V(1).Infof("headless: exported %d frame(s) to %s", b.Len(), name)
	}
	return err
}
