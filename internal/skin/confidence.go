// Package skin scores how likely a single color is to be human skin.
//
// Two independent heuristics are provided: a cheap RGB/HSV gate
// (IsLikelySkinTone) suitable for pre-filtering large sample sets, and a
// graded YCbCr chroma-range score (Confidence) for the colors that pass it.
// Both are pure functions and safe for concurrent use.
package skin

import (
	"math"

	"github.com/tonescope/skintone-mcp/internal/colorspace"
)

// Empirically established skin chroma ranges in full-range BT.601 YCbCr.
// Colors whose Cb/Cr fall inside both ranges are very likely skin regardless
// of lightness.
const (
	CbMin = 77.0
	CbMax = 127.0
	CrMin = 133.0
	CrMax = 173.0
)

// HSV gate bounds for the cheap pre-filter.
const (
	hueWarmMax  = 50.0  // upper warm hue bound, degrees
	hueWrapMin  = 340.0 // reds wrapping past 360
	satMin      = 0.1
	satMax      = 0.6
	valMin      = 0.2
	valMax      = 0.95
	minRed      = 60 // skin always has substantial red
	minRedGreen = 5  // and red measurably above green
)

// Confidence returns the likelihood in [0, 1] that a YCbCr color is skin.
//
// The score is the product of two triangular membership functions, one per
// chroma axis: each peaks at 1.0 in the middle of its skin range and falls
// linearly to 0 at the range boundaries, measured as distance to the nearer
// boundary. A color outside either range scores 0.
func Confidence(c colorspace.YCbCrColor) float64 {
	return clamp01(rangeMembership(c.Cb, CbMin, CbMax) * rangeMembership(c.Cr, CrMin, CrMax))
}

// IsLikelySkinTone reports whether an RGB color plausibly belongs to skin.
//
// This is a coarse gate combining channel-order constraints (R > G > B with
// R > 60 and R-G > 5) with HSV bounds (hue in [0°,50°] or [340°,360°],
// saturation in [0.1,0.6], value in [0.2,0.95]). It exists to avoid YCbCr
// conversions for samples that obviously are not skin; borderline colors
// should be scored with Confidence instead.
func IsLikelySkinTone(p colorspace.Pixel) bool {
	if p.R <= p.G || p.G <= p.B {
		return false
	}
	if p.R < minRed || int(p.R)-int(p.G) <= minRedGreen {
		return false
	}

	hsv := colorspace.RGBToHSV(p.R, p.G, p.B)
	if hsv.H > hueWarmMax && hsv.H < hueWrapMin {
		return false
	}
	if hsv.S < satMin || hsv.S > satMax {
		return false
	}
	if hsv.V < valMin || hsv.V > valMax {
		return false
	}
	return true
}

// rangeMembership is a triangular membership function over [lo, hi]: 1.0 at
// the center, 0 at (and beyond) the boundaries.
func rangeMembership(v, lo, hi float64) float64 {
	d := math.Min(v-lo, hi-v)
	if d <= 0 {
		return 0
	}
	return clamp01(d / ((hi - lo) / 2.0))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
