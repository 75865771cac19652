// Package sampling turns an image's pixel accessor and a region descriptor
// into a bounded sequence of color samples, and rejects statistical
// outliers from the result.
//
// # Regions
//
// Three region variants are supported:
//   - PointRegion: dense local sampling around a center point
//   - RectRegion: equivalent sampling at a rectangle's centroid
//   - GridRegion: whole-image sampling partitioned into equal cells
//
// Out-of-bounds coordinates are always skipped rather than clamped, so a
// region that lies entirely outside the image legitimately produces an
// empty sample set; the caller decides how to handle that.
//
// # Work bounds
//
// Point and rect regions walk their neighborhood with a fixed stride of 2.
// Grid sampling derives its stride from an adaptive density target that
// decreases monotonically with image area, so the total number of samples
// stays roughly constant across resolutions. Every mode additionally honors
// a hard per-set maximum.
package sampling
