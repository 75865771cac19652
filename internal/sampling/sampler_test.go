package sampling

import (
	"testing"

	"github.com/tonescope/skintone-mcp/internal/colorspace"
)

// uniformAccessor returns the same pixel for every coordinate.
func uniformAccessor(p colorspace.Pixel) PixelAccessor {
	return func(x, y int) colorspace.Pixel { return p }
}

// quadrantAccessor colors each image quadrant differently.
func quadrantAccessor(width, height int) PixelAccessor {
	return func(x, y int) colorspace.Pixel {
		switch {
		case x < width/2 && y < height/2:
			return colorspace.Pixel{R: 255, G: 0, B: 0}
		case x >= width/2 && y < height/2:
			return colorspace.Pixel{R: 0, G: 255, B: 0}
		case x < width/2:
			return colorspace.Pixel{R: 0, G: 0, B: 255}
		default:
			return colorspace.Pixel{R: 255, G: 255, B: 255}
		}
	}
}

func TestSample_Point(t *testing.T) {
	skin := colorspace.Pixel{R: 200, G: 150, B: 120}
	samples := Sample(uniformAccessor(skin), 100, 100, PointRegion{X: 50, Y: 50, Radius: 10}, 0)

	// Radius 10 with stride 2 walks an 11x11 lattice.
	if len(samples) != 121 {
		t.Errorf("sample count: got %d, want 121", len(samples))
	}
	for _, s := range samples {
		if s != skin {
			t.Fatalf("unexpected sample %+v", s)
		}
	}
}

func TestSample_PointMaxSamples(t *testing.T) {
	samples := Sample(uniformAccessor(colorspace.Pixel{}), 100, 100, PointRegion{X: 50, Y: 50, Radius: 20}, 50)
	if len(samples) != 50 {
		t.Errorf("sample count: got %d, want 50", len(samples))
	}
}

func TestSample_PointNearEdgeSkipsOutOfBounds(t *testing.T) {
	samples := Sample(uniformAccessor(colorspace.Pixel{}), 100, 100, PointRegion{X: 0, Y: 0, Radius: 10}, 0)

	// Only the in-bounds quadrant of the neighborhood (6x6 lattice points
	// at 0,2,...,10) survives.
	if len(samples) != 36 {
		t.Errorf("sample count: got %d, want 36", len(samples))
	}
}

func TestSample_PointFullyOutOfBounds(t *testing.T) {
	samples := Sample(uniformAccessor(colorspace.Pixel{}), 100, 100, PointRegion{X: 500, Y: 500, Radius: 5}, 0)
	if len(samples) != 0 {
		t.Errorf("expected empty sample set, got %d samples", len(samples))
	}
}

func TestSample_Rect(t *testing.T) {
	acc := quadrantAccessor(100, 100)
	samples := Sample(acc, 100, 100, RectRegion{X1: 10, Y1: 10, X2: 40, Y2: 40}, 0)

	if len(samples) == 0 {
		t.Fatal("expected samples from rect region")
	}
	// The rect sits inside the red top-left quadrant.
	for _, s := range samples {
		if s.R != 255 || s.G != 0 || s.B != 0 {
			t.Fatalf("unexpected sample %+v", s)
		}
	}
}

func TestSampleGrid(t *testing.T) {
	acc := quadrantAccessor(200, 200)
	cells := SampleGrid(acc, 200, 200, GridRegion{Rows: 2, Cols: 2}, 0)

	if len(cells) != 4 {
		t.Fatalf("cell count: got %d, want 4", len(cells))
	}

	wantCells := []CellKey{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	wantColor := []colorspace.Pixel{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 255, G: 255, B: 255},
	}
	for i, cell := range cells {
		if cell.Cell != wantCells[i] {
			t.Errorf("cell %d key: got %+v, want %+v", i, cell.Cell, wantCells[i])
		}
		if len(cell.Samples) == 0 {
			t.Fatalf("cell %d has no samples", i)
		}
		for _, s := range cell.Samples {
			if s != wantColor[i] {
				t.Fatalf("cell %d: unexpected sample %+v", i, s)
			}
		}
	}
}

func TestSampleGrid_MaxSamplesPerCell(t *testing.T) {
	cells := SampleGrid(uniformAccessor(colorspace.Pixel{}), 300, 300, GridRegion{Rows: 3, Cols: 3}, 25)
	for _, cell := range cells {
		if len(cell.Samples) > 25 {
			t.Errorf("cell %+v exceeded cap: %d samples", cell.Cell, len(cell.Samples))
		}
	}
}

func TestGridStride_Adaptive(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          int
	}{
		{"tiny image uses stride 1", 100, 100, 1},
		{"small image targets 200 per axis", 600, 800, 3},
		{"medium image targets 150 per axis", 1200, 1500, 8},
		{"large image targets 100 per axis", 3000, 4000, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gridStride(tt.width, tt.height); got != tt.want {
				t.Errorf("stride: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGridStride_MonotonicWithArea(t *testing.T) {
	prev := gridStride(400, 400)
	for _, size := range []int{800, 1200, 2000, 3000, 5000} {
		s := gridStride(size, size)
		if s < prev {
			t.Fatalf("stride decreased from %d to %d at size %d", prev, s, size)
		}
		prev = s
	}
}
