package sampling

import "github.com/tonescope/skintone-mcp/internal/colorspace"

// PixelAccessor reads the color at a pixel coordinate. Implementations must
// only be called with coordinates inside the image bounds; the sampler never
// clamps, it skips out-of-bounds coordinates instead.
type PixelAccessor func(x, y int) colorspace.Pixel

// Region describes where samples are drawn from an image. It is a closed
// set of variants: PointRegion, RectRegion, and GridRegion. Regions are
// immutable and constructed by the caller per analysis request.
type Region interface {
	isRegion()
}

// PointRegion samples a dense square neighborhood around a center point.
type PointRegion struct {
	X      int // Center X coordinate
	Y      int // Center Y coordinate
	Radius int // Half-width of the square neighborhood, in pixels
}

// RectRegion samples the center-weighted neighborhood of a rectangle,
// equivalent to a PointRegion at the rectangle's centroid with a radius of
// half the shorter side.
type RectRegion struct {
	X1 int // Left edge (inclusive)
	Y1 int // Top edge (inclusive)
	X2 int // Right edge (exclusive)
	Y2 int // Bottom edge (exclusive)
}

// GridRegion partitions the whole image into Rows x Cols equal cells and
// samples each cell independently with an adaptive stride.
type GridRegion struct {
	Rows int
	Cols int
}

func (PointRegion) isRegion() {}
func (RectRegion) isRegion()  {}
func (GridRegion) isRegion()  {}

// Center returns the rectangle's centroid.
func (r RectRegion) Center() (x, y int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// radius derives the point-equivalent sampling radius from the rectangle.
func (r RectRegion) radius() int {
	w := r.X2 - r.X1
	h := r.Y2 - r.Y1
	if h < w {
		w = h
	}
	if w < 2 {
		return 1
	}
	return w / 2
}

// SampleSet is an ordered sequence of sampled pixels. A SampleSet is owned
// by a single analysis invocation and discarded after clustering.
type SampleSet []colorspace.Pixel

// CellKey identifies the originating grid cell of a partitioned sample set.
type CellKey struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CellSamples pairs a grid cell with the samples drawn from it. Cells are
// kept in row-major order so grid results are deterministic.
type CellSamples struct {
	Cell    CellKey
	Samples SampleSet
}
