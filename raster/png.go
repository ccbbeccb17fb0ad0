// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package raster

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"
)

// WritePNG encodes img into w as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "raster: encode PNG")
	}
	return nil
}

// SavePNG writes img into the named file as PNG.
func SavePNG(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "raster")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "raster: close %s", name)
		}
	}()
	return WritePNG(f, img)
}
