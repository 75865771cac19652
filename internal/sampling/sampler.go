package sampling

// Local sampling walks point neighborhoods with this fixed stride.
const pointStride = 2

// Adaptive density targets for whole-image grid sampling. The target number
// of samples per axis shrinks as the image grows so total work stays
// bounded roughly independently of resolution.
const (
	smallImageArea  = 500_000   // below ~0.5MP
	mediumImageArea = 2_000_000 // below ~2MP
	targetAxisSmall  = 200
	targetAxisMedium = 150
	targetAxisLarge  = 100
)

// Sample draws a bounded sequence of pixels for a point or rectangle region.
//
// For PointRegion the square neighborhood of the given radius is walked with
// a stride of 2 in both axes. RectRegion is sampled identically at the
// rectangle's centroid. Coordinates outside the image are skipped, never
// clamped, so a region that lies entirely off-image yields an empty set.
//
// maxSamples bounds the result length; 0 or negative means unbounded.
// GridRegion values must go through SampleGrid instead; passing one here
// returns an empty set.
func Sample(px PixelAccessor, width, height int, region Region, maxSamples int) SampleSet {
	switch r := region.(type) {
	case PointRegion:
		return samplePoint(px, width, height, r.X, r.Y, r.Radius, maxSamples)
	case RectRegion:
		cx, cy := r.Center()
		return samplePoint(px, width, height, cx, cy, r.radius(), maxSamples)
	default:
		return nil
	}
}

// SampleGrid partitions the image into the grid's cells and samples each
// independently, returning per-cell sample sets in row-major order.
//
// The stride is derived from the adaptive density target:
//
//	stride = max(1, min(width, height) / targetSamplesPerAxis)
//
// where targetSamplesPerAxis is 200 for small images (under ~0.5MP), 150
// for medium, and 100 for large ones. Each cell is additionally capped at
// maxSamples pixels (0 or negative means unbounded).
func SampleGrid(px PixelAccessor, width, height int, grid GridRegion, maxSamples int) []CellSamples {
	if grid.Rows < 1 || grid.Cols < 1 || width < 1 || height < 1 {
		return nil
	}

	stride := gridStride(width, height)
	cellW := width / grid.Cols
	cellH := height / grid.Rows

	cells := make([]CellSamples, 0, grid.Rows*grid.Cols)
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			x1 := col * cellW
			y1 := row * cellH
			x2 := x1 + cellW
			y2 := y1 + cellH
			// The last row/column absorbs the remainder pixels.
			if col == grid.Cols-1 {
				x2 = width
			}
			if row == grid.Rows-1 {
				y2 = height
			}

			var samples SampleSet
			for y := y1; y < y2; y += stride {
				for x := x1; x < x2; x += stride {
					samples = append(samples, px(x, y))
					if maxSamples > 0 && len(samples) >= maxSamples {
						goto cellDone
					}
				}
			}
		cellDone:
			cells = append(cells, CellSamples{
				Cell:    CellKey{Row: row, Col: col},
				Samples: samples,
			})
		}
	}
	return cells
}

func samplePoint(px PixelAccessor, width, height, cx, cy, radius, maxSamples int) SampleSet {
	if radius < 1 {
		radius = 1
	}

	var samples SampleSet
	for y := cy - radius; y <= cy+radius; y += pointStride {
		for x := cx - radius; x <= cx+radius; x += pointStride {
			if x < 0 || x >= width || y < 0 || y >= height {
				continue
			}
			samples = append(samples, px(x, y))
			if maxSamples > 0 && len(samples) >= maxSamples {
				return samples
			}
		}
	}
	return samples
}

// gridStride computes the adaptive whole-image sampling stride.
func gridStride(width, height int) int {
	area := width * height
	target := targetAxisLarge
	switch {
	case area < smallImageArea:
		target = targetAxisSmall
	case area < mediumImageArea:
		target = targetAxisMedium
	}

	short := width
	if height < short {
		short = height
	}
	stride := short / target
	if stride < 1 {
		stride = 1
	}
	return stride
}
