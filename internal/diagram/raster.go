package diagram

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// renderScale oversamples the raster so later zooming stays crisp.
const renderScale = 2.0

// maxRasterDim caps either pixel dimension to keep a malicious or runaway
// viewBox from allocating gigabytes.
const maxRasterDim = 8192

// ErrNoImage reports an SVG whose viewBox resolves to a zero-sized surface.
// It is a recoverable per-block failure, not a crash.
var ErrNoImage = errors.New("diagram produced no image")

// Raster is a rasterized diagram: straight (non-premultiplied) RGBA pixels
// at renderScale times the logical size.
type Raster struct {
	Pixels  *image.NRGBA
	Logical ui.Size
}

// Rasterize renders sanitized SVG bytes at 2x linear scale and converts the
// result to straight RGBA.
func Rasterize(svg []byte) (*Raster, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}

	logicalW := icon.ViewBox.W
	logicalH := icon.ViewBox.H
	if logicalW <= 0 || logicalH <= 0 {
		return nil, ErrNoImage
	}

	w := int(math.Ceil(logicalW * renderScale))
	h := int(math.Ceil(logicalH * renderScale))
	if w <= 0 || h <= 0 {
		return nil, ErrNoImage
	}

	clampW, clampH := w, h
	if w > maxRasterDim || h > maxRasterDim {
		s := math.Min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		clampW = max(int(math.Round(float64(w)*s)), 1)
		clampH = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)

	// image.RGBA stores alpha-premultiplied pixels; the host wants straight
	// RGBA. imaging.Clone also performs the clamp resize when needed.
	var straight *image.NRGBA
	if clampW != w || clampH != h {
		straight = imaging.Resize(dst, clampW, clampH, imaging.Linear)
	} else {
		straight = imaging.Clone(dst)
	}

	return &Raster{
		Pixels:  straight,
		Logical: ui.Size{W: float32(logicalW), H: float32(logicalH)},
	}, nil
}
