// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package raster

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LabelSize is the size of labels, in points.
const LabelSize = 12

func (r *Renderer) loadFace() error {
	if r.face != nil {
		return nil
	}
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return errors.Wrap(err, "raster: parse font")
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    LabelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return errors.Wrap(err, "raster: font face")
	}
	r.face = face
	return nil
}

// Label draws text onto img with its top-left corner
// at (x, y).
func (r *Renderer) Label(img draw.Image, x, y int, text string, c colorful.Color) error {
	if err := r.loadFace(); err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(NRGBA(c, 1)),
		Face: r.face,
		Dot:  fixed.P(x, y+r.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}

// LabelWidth returns the width of text in pixels.
func (r *Renderer) LabelWidth(text string) (int, error) {
	if err := r.loadFace(); err != nil {
		return 0, err
	}
	return font.MeasureString(r.face, text).Ceil(), nil
}
