package sampling

import "sort"

// Below this many samples the quartile estimates are too noisy to trust, so
// filtering is skipped entirely.
const minSamplesForFiltering = 10

// Tukey fence multiplier on the interquartile range.
const iqrFence = 1.5

// FilterOutliers removes samples whose brightness or saturation falls
// outside the Tukey fences of the set.
//
// Brightness is the mean of the RGB channels; saturation is (max-min)/max
// over the normalized channels (0 for black). Q1, Q3, and the IQR are
// computed for each metric independently, and a sample survives only if it
// lies within [Q1 - 1.5*IQR, Q3 + 1.5*IQR] on BOTH metrics. This is a
// per-axis fence with logical AND, not a joint 2D test.
//
// Sets with fewer than 10 samples are returned unchanged.
func FilterOutliers(samples SampleSet) SampleSet {
	if len(samples) < minSamplesForFiltering {
		return samples
	}

	brightness := make([]float64, len(samples))
	saturation := make([]float64, len(samples))
	for i, p := range samples {
		brightness[i] = sampleBrightness(p.R, p.G, p.B)
		saturation[i] = sampleSaturation(p.R, p.G, p.B)
	}

	bLo, bHi := tukeyFences(brightness)
	sLo, sHi := tukeyFences(saturation)

	filtered := make(SampleSet, 0, len(samples))
	for i, p := range samples {
		if brightness[i] < bLo || brightness[i] > bHi {
			continue
		}
		if saturation[i] < sLo || saturation[i] > sHi {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func sampleBrightness(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3.0
}

func sampleSaturation(r, g, b uint8) float64 {
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	if max == 0 {
		return 0
	}

	min := r
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}
	return float64(max-min) / float64(max)
}

// tukeyFences returns the [Q1 - 1.5*IQR, Q3 + 1.5*IQR] interval for values.
func tukeyFences(values []float64) (lo, hi float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := sorted[len(sorted)/4]
	q3 := sorted[(len(sorted)*3)/4]
	iqr := q3 - q1
	return q1 - iqrFence*iqr, q3 + iqrFence*iqr
}
