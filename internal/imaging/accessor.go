package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/transform"

	"github.com/tonescope/skintone-mcp/internal/colorspace"
	"github.com/tonescope/skintone-mcp/internal/sampling"
)

// Accessor adapts a decoded image into the pixel accessor the analysis
// pipeline samples through, together with the dimensions the sampler needs
// for bounds handling.
//
// The accessor translates sampler coordinates (0-based, top-left origin)
// into the image's own bounds and converts native colors to 8-bit RGB;
// 16-bit source channels are scaled down by dropping the low byte, matching
// how the rest of the pipeline treats color depth. The underlying image is
// only read, never written.
func Accessor(img image.Image) (sampling.PixelAccessor, int, int) {
	bounds := img.Bounds()
	accessor := func(x, y int) colorspace.Pixel {
		r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
		return colorspace.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
	}
	return accessor, bounds.Dx(), bounds.Dy()
}

// Downscale bounds an image's longer side to maxDimension, preserving
// aspect ratio, using bilinear resampling.
//
// Whole-image grid analysis already adapts its sampling stride to the
// image area, but decoding-resolution photos straight off a camera still
// cost memory to walk; shrinking them first keeps grid analysis fast
// without changing the measured tones. Images already within the bound are
// returned unchanged. maxDimension <= 0 disables scaling.
func Downscale(img image.Image, maxDimension int) image.Image {
	if maxDimension <= 0 {
		return img
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDimension && h <= maxDimension {
		return img
	}

	if w >= h {
		h = h * maxDimension / w
		w = maxDimension
	} else {
		w = w * maxDimension / h
		h = maxDimension
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return transform.Resize(img, w, h, transform.Linear)
}
