package cluster

import (
	"math"
	"math/rand"
	"sort"

	"github.com/tonescope/skintone-mcp/internal/colorspace"
)

// ChromaWeight scales the a/b axes in the clustering distance. Hue and
// chroma matter more than lightness for tone discrimination, so the chroma
// axes are weighted above L.
const ChromaWeight = 2.5

// MaxIterations caps the assign/update loop. Hitting the cap without
// convergence is expected behavior for adversarial color distributions, not
// a fault; the last assignment is returned as-is.
const MaxIterations = 20

// Convergence thresholds, in weighted Lab distance moved per center.
const (
	ConvergenceCoarse = 2.0 // whole-image / palette-style clustering
	ConvergenceSkin   = 1.0 // skin-focused clustering
)

// HighVarianceThreshold is the intra-cluster variance above which a
// cluster's mean is considered unrepresentative and callers should fall
// back to a per-channel RGB median. The value is the original empirical
// choice; its derivation is not recoverable, so it is preserved as a named
// tunable rather than re-derived.
const HighVarianceThreshold = 2000.0

// Sample bundles a source pixel with its precomputed Lab representation so
// clustering never recomputes conversions in the inner loop.
type Sample struct {
	Pixel colorspace.Pixel
	Lab   colorspace.LabColor
}

// Cluster is a non-empty group of samples with its Lab centroid and a
// quality score. Clusters are ephemeral: produced and consumed within one
// clustering call.
type Cluster struct {
	Samples  []Sample
	Centroid colorspace.LabColor

	// Variance is the mean squared weighted Lab distance of the cluster's
	// samples to its centroid. Lower is tighter.
	Variance float64
}

// Distance returns the weighted Lab distance used throughout clustering:
//
//	d = sqrt(ΔL² + w·Δa² + w·Δb²), w = ChromaWeight
func Distance(a, b colorspace.LabColor) float64 {
	return math.Sqrt(sqDistance(a, b))
}

func sqDistance(a, b colorspace.LabColor) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return dl*dl + ChromaWeight*(da*da+db*db)
}

// Partition clusters pixels into at most k groups by K-means++ in Lab
// space and returns them sorted by sample count, largest first.
//
// If there are fewer samples than k, a single cluster holding every sample
// is returned. Otherwise centers are seeded with K-means++ (first center
// uniform random, each subsequent center roulette-selected with probability
// proportional to squared distance from the nearest chosen center) and
// refined for up to MaxIterations assign/update rounds, stopping early once
// no center moves farther than the convergence threshold.
//
// Every returned cluster is non-empty and the union of all clusters'
// samples equals the input. rng drives the seeding; callers own it so runs
// can be made deterministic.
func Partition(rng *rand.Rand, pixels []colorspace.Pixel, k int, convergence float64) []Cluster {
	if len(pixels) == 0 {
		return nil
	}

	samples := make([]Sample, len(pixels))
	for i, p := range pixels {
		samples[i] = Sample{Pixel: p, Lab: colorspace.RGBToLab(p.R, p.G, p.B)}
	}

	if k < 1 {
		k = 1
	}
	if len(samples) < k {
		return []Cluster{buildCluster(samples)}
	}

	centers := seedCenters(rng, samples, k)
	assignments := make([]int, len(samples))

	for iter := 0; iter < MaxIterations; iter++ {
		for i, s := range samples {
			assignments[i] = nearestCenter(s.Lab, centers)
		}

		moved := 0.0
		for c := range centers {
			next, ok := centroidOfAssigned(samples, assignments, c)
			if !ok {
				// Center lost all samples; leave it where it is.
				continue
			}
			if d := Distance(centers[c], next); d > moved {
				moved = d
			}
			centers[c] = next
		}
		if moved <= convergence {
			break
		}
	}

	// Final assignment against the settled centers.
	groups := make([][]Sample, len(centers))
	for _, s := range samples {
		c := nearestCenter(s.Lab, centers)
		groups[c] = append(groups[c], s)
	}

	clusters := make([]Cluster, 0, len(centers))
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		clusters = append(clusters, buildCluster(group))
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i].Samples) > len(clusters[j].Samples)
	})
	return clusters
}

// RepresentativeColor returns the cluster's centroid converted back to RGB.
// Callers should prefer RGBMedian when Variance exceeds
// HighVarianceThreshold, since a high-variance mean is not representative.
func (c *Cluster) RepresentativeColor() colorspace.Pixel {
	return colorspace.LabToRGB(c.Centroid)
}

// RGBMedian returns the per-channel median of the cluster's source pixels.
func (c *Cluster) RGBMedian() colorspace.Pixel {
	n := len(c.Samples)
	rs := make([]int, n)
	gs := make([]int, n)
	bs := make([]int, n)
	for i, s := range c.Samples {
		rs[i] = int(s.Pixel.R)
		gs[i] = int(s.Pixel.G)
		bs[i] = int(s.Pixel.B)
	}
	sort.Ints(rs)
	sort.Ints(gs)
	sort.Ints(bs)
	return colorspace.Pixel{
		R: uint8(rs[n/2]),
		G: uint8(gs[n/2]),
		B: uint8(bs[n/2]),
	}
}

// seedCenters implements K-means++ initialization.
func seedCenters(rng *rand.Rand, samples []Sample, k int) []colorspace.LabColor {
	centers := make([]colorspace.LabColor, 0, k)
	centers = append(centers, samples[rng.Intn(len(samples))].Lab)

	minSq := make([]float64, len(samples))
	for len(centers) < k {
		total := 0.0
		for i, s := range samples {
			d := sqDistance(s.Lab, centers[0])
			for _, c := range centers[1:] {
				if sd := sqDistance(s.Lab, c); sd < d {
					d = sd
				}
			}
			minSq[i] = d
			total += d
		}

		if total == 0 {
			// All remaining mass sits on existing centers (e.g. a uniform
			// sample set); duplicating a center keeps the invariant that we
			// hand back k centers, and empties are dropped later.
			centers = append(centers, centers[len(centers)-1])
			continue
		}

		// Roulette-wheel selection weighted by squared distance.
		target := rng.Float64() * total
		acc := 0.0
		pick := len(samples) - 1
		for i, w := range minSq {
			acc += w
			if acc >= target {
				pick = i
				break
			}
		}
		centers = append(centers, samples[pick].Lab)
	}
	return centers
}

func nearestCenter(lab colorspace.LabColor, centers []colorspace.LabColor) int {
	best := 0
	bestD := math.MaxFloat64
	for i, c := range centers {
		if d := sqDistance(lab, c); d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

func centroidOf(samples []Sample) colorspace.LabColor {
	var l, a, b float64
	for _, s := range samples {
		l += s.Lab.L
		a += s.Lab.A
		b += s.Lab.B
	}
	n := float64(len(samples))
	return colorspace.LabColor{L: l / n, A: a / n, B: b / n}
}

func centroidOfAssigned(samples []Sample, assignments []int, c int) (colorspace.LabColor, bool) {
	var l, a, b float64
	n := 0
	for i, s := range samples {
		if assignments[i] != c {
			continue
		}
		l += s.Lab.L
		a += s.Lab.A
		b += s.Lab.B
		n++
	}
	if n == 0 {
		return colorspace.LabColor{}, false
	}
	fn := float64(n)
	return colorspace.LabColor{L: l / fn, A: a / fn, B: b / fn}, true
}

// buildCluster finalizes a group: its centroid is the Lab mean of its own
// samples, and Variance the mean squared weighted distance to it.
func buildCluster(samples []Sample) Cluster {
	centroid := centroidOf(samples)
	variance := 0.0
	for _, s := range samples {
		variance += sqDistance(s.Lab, centroid)
	}
	variance /= float64(len(samples))
	return Cluster{Samples: samples, Centroid: centroid, Variance: variance}
}
