package analysis

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/tonescope/skintone-mcp/internal/cluster"
	"github.com/tonescope/skintone-mcp/internal/sampling"
	"github.com/tonescope/skintone-mcp/internal/skin"
	"github.com/tonescope/skintone-mcp/internal/tone"
)

// ErrNoSamples reports degenerate input: the region yielded no usable
// samples (e.g. it lies entirely outside the image). The engine never
// fabricates a default color; callers decide the fallback, typically by
// broadening the region or reporting "could not analyze".
var ErrNoSamples = errors.New("no usable samples in region")

// Default number of clusters for the skin-focused point/rect analysis.
const defaultK = 3

// Per-region sample cap; dense local sampling never needs more than this
// for a stable estimate.
const maxSamplesPerRegion = 4000

// Engine orchestrates the analysis pipeline:
//
//	sampler -> outlier filter -> skin gate -> clusterer -> classifier
//
// Data flows one way through the pipeline; the engine only ever reads the
// source pixels. An Engine is safe for concurrent use provided the pixel
// accessors handed to it are, since each invocation owns its intermediate
// sample sets.
type Engine struct {
	rng *rand.Rand
}

// New creates an engine with time-seeded cluster initialization.
func New() *Engine {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed creates an engine whose K-means++ seeding is deterministic,
// which tests and reproducible pipelines rely on.
func NewWithSeed(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// CellResult is one qualifying grid cell's classification.
type CellResult struct {
	Cell        sampling.CellKey `json:"cell"`
	SampleCount int              `json:"sample_count"`
	Result      *tone.Result     `json:"result"`
}

// GridResult is the outcome of whole-image analysis: one ranked result per
// qualifying cell plus a single best aggregate classification.
type GridResult struct {
	// Cells holds qualifying sub-regions ranked by skin confidence,
	// highest first.
	Cells []CellResult `json:"cells"`

	// Best is the aggregate classification over all qualifying cells'
	// samples pooled together.
	Best *tone.Result `json:"best"`
}

// Analyze runs the full pipeline for a point or rect region and returns a
// single classification.
//
// Samples are drawn from the region, outliers beyond the Tukey fences of
// brightness and saturation are dropped, samples failing the cheap skin
// gate are removed (unless that would empty the set, in which case the
// ungated filtered set is kept so non-skin regions still classify, with a
// correspondingly low confidence), and the survivors are clustered in Lab
// space. The dominant cluster's centroid is classified; if its variance
// exceeds cluster.HighVarianceThreshold, the per-channel RGB median of the
// cluster is classified instead, since a high-variance mean is not
// representative.
//
// Returns ErrNoSamples when the region produces no samples at all.
func (e *Engine) Analyze(px sampling.PixelAccessor, width, height int, region sampling.Region) (*tone.Result, error) {
	if _, ok := region.(sampling.GridRegion); ok {
		return nil, fmt.Errorf("grid regions must be analyzed with AnalyzeGrid")
	}

	samples := sampling.Sample(px, width, height, region, maxSamplesPerRegion)
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	filtered := sampling.FilterOutliers(samples)
	gated := skinGate(filtered)
	if len(gated) == 0 {
		// Nothing passed the skin gate; classify what the region actually
		// contains and let the confidence score tell the story.
		gated = filtered
	}

	result, err := e.classifyPrepared(gated, cluster.ConvergenceSkin)
	if err != nil {
		return nil, err
	}
	result.Metrics["sample_count"] = float64(len(samples))
	return result, nil
}

// AnalyzeGrid runs whole-image analysis over a rows x cols grid.
//
// Each cell runs the same pipeline as Analyze. A cell qualifies when its
// filtered, skin-gated sample set is non-empty; qualifying cells are ranked
// by resulting skin confidence. The Best result re-clusters the union of
// all qualifying cells' gated samples, so it represents the image's
// dominant skin tone rather than any single cell.
//
// Returns ErrNoSamples when no cell qualifies.
func (e *Engine) AnalyzeGrid(px sampling.PixelAccessor, width, height, rows, cols int) (*GridResult, error) {
	if rows < 1 {
		rows = 3
	}
	if cols < 1 {
		cols = 3
	}

	cells := sampling.SampleGrid(px, width, height, sampling.GridRegion{Rows: rows, Cols: cols}, maxSamplesPerRegion)

	results := make([]CellResult, 0, len(cells))
	var pooled sampling.SampleSet
	for _, c := range cells {
		gated := skinGate(sampling.FilterOutliers(c.Samples))
		if len(gated) == 0 {
			continue
		}

		res, err := e.classifyPrepared(gated, cluster.ConvergenceSkin)
		if err != nil {
			continue
		}
		res.Metrics["sample_count"] = float64(len(c.Samples))
		results = append(results, CellResult{
			Cell:        c.Cell,
			SampleCount: len(gated),
			Result:      res,
		})
		pooled = append(pooled, gated...)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("grid analysis: %w", ErrNoSamples)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Result.Confidence > results[j].Result.Confidence
	})

	best, err := e.classifyPrepared(pooled, cluster.ConvergenceCoarse)
	if err != nil {
		return nil, err
	}

	return &GridResult{Cells: results, Best: best}, nil
}

// CheekRegions translates a face bounding box into the two point regions a
// caller usually wants to analyze: left and right cheek, inset 20% from the
// box edges at its vertical center. The face detector itself lives outside
// the core; only this coordinate translation does not.
func CheekRegions(box sampling.RectRegion, radius int) (left, right sampling.PointRegion) {
	w := box.X2 - box.X1
	cy := (box.Y1 + box.Y2) / 2
	inset := w / 5

	left = sampling.PointRegion{X: box.X1 + inset, Y: cy, Radius: radius}
	right = sampling.PointRegion{X: box.X2 - inset, Y: cy, Radius: radius}
	return left, right
}

// classifyPrepared clusters an already filtered and gated sample set and
// classifies the dominant cluster's resolved color.
func (e *Engine) classifyPrepared(samples sampling.SampleSet, convergence float64) (*tone.Result, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	clusters := cluster.Partition(e.rng, samples, defaultK, convergence)
	if len(clusters) == 0 {
		return nil, ErrNoSamples
	}

	dominant := clusters[0]
	resolved := dominant.RepresentativeColor()
	if dominant.Variance > cluster.HighVarianceThreshold {
		resolved = dominant.RGBMedian()
	}

	result := tone.Classify(resolved)
	result.Metrics["filtered_count"] = float64(len(samples))
	result.Metrics["cluster_variance"] = dominant.Variance
	result.Metrics["cluster_count"] = float64(len(clusters))
	return result, nil
}

// skinGate keeps the samples passing the cheap RGB/HSV skin pre-filter.
func skinGate(samples sampling.SampleSet) sampling.SampleSet {
	gated := make(sampling.SampleSet, 0, len(samples))
	for _, p := range samples {
		if skin.IsLikelySkinTone(p) {
			gated = append(gated, p)
		}
	}
	return gated
}
