package tone

import (
	"math"

	"github.com/tonescope/skintone-mcp/internal/colorspace"
	"github.com/tonescope/skintone-mcp/internal/skin"
)

// itaEpsilon substitutes for b* when it is exactly zero, where the ITA
// angle formula would divide by zero. The angle then degenerates to ±90°
// depending on the sign of (L - 50), which is the documented behavior, not
// a silent NaN.
const itaEpsilon = 1e-6

// undertoneHysteresis is the minimum lead one undertone score needs over
// the other before the label leaves "neutral". The band keeps the label
// from flapping for colors near the warm/cool boundary.
const undertoneHysteresis = 0.2

// Category is one bucket of the ITA classification table.
type Category struct {
	// Name is the display name of the tone depth bucket.
	Name string `json:"name"`

	// Tone is the base tone label ("light", "medium", "deep").
	Tone string `json:"tone"`

	// Glyph is a short display glyph for the bucket.
	Glyph string `json:"glyph"`

	// MinITA is the exclusive lower ITA bound of the bucket, in degrees.
	MinITA float64 `json:"min_ita"`
}

// categories is the fixed ITA classification table, ordered highest lower
// bound first. Classification walks the table and takes the first bucket
// whose bound the ITA value exceeds; the final entry catches everything
// else.
var categories = []Category{
	{Name: "Very Light", Tone: "light", Glyph: "I", MinITA: 55},
	{Name: "Light", Tone: "light", Glyph: "II", MinITA: 41},
	{Name: "Intermediate", Tone: "medium", Glyph: "III", MinITA: 28},
	{Name: "Tan", Tone: "medium", Glyph: "IV", MinITA: 10},
	{Name: "Brown", Tone: "deep", Glyph: "V", MinITA: -30},
	{Name: "Dark", Tone: "deep", Glyph: "VI", MinITA: math.Inf(-1)},
}

// Result is the terminal, immutable record of one classification: the
// resolved color in every working representation plus the derived labels.
// It is created once and never mutated afterwards.
type Result struct {
	RGB   colorspace.Pixel      `json:"rgb"`
	Hex   string                `json:"hex"`
	Lab   colorspace.LabColor   `json:"lab"`
	YCbCr colorspace.YCbCrColor `json:"ycbcr"`

	// ITA is the Individual Typology Angle in degrees.
	ITA float64 `json:"ita"`

	// Category is the tone depth bucket the ITA value falls into.
	Category Category `json:"category"`

	// Undertone is "warm", "cool", or "neutral".
	Undertone string `json:"undertone"`

	// Bias describes the perceptual color cast of the tone.
	Bias string `json:"bias"`

	// Confidence is the skin likelihood of the resolved color, in [0, 1].
	Confidence float64 `json:"confidence"`

	// Metrics carries secondary measurements (warm/cool scores,
	// saturation, chroma, hue). Engines may add pipeline metrics such as
	// sample counts and cluster variance.
	Metrics map[string]float64 `json:"metrics"`
}

// ITA computes the Individual Typology Angle of a Lab color, in degrees:
//
//	ITA = atan((L - 50) / b) · 180/π
//
// Higher angles mean lighter tones. When b* is exactly zero the formula is
// undefined; b* is substituted with a small epsilon so the result
// degenerates to +90° (L above 50) or -90° (L below 50) instead of NaN.
func ITA(lab colorspace.LabColor) float64 {
	b := lab.B
	if b == 0 {
		b = itaEpsilon
	}
	return math.Atan((lab.L-50.0)/b) * 180.0 / math.Pi
}

// CategoryForITA returns the tone bucket for an ITA angle using the fixed
// ordered table: >55 Very Light, >41 Light, >28 Intermediate, >10 Tan,
// >-30 Brown, otherwise Dark.
func CategoryForITA(ita float64) Category {
	for _, c := range categories {
		if ita > c.MinITA {
			return c
		}
	}
	return categories[len(categories)-1]
}

// Classify derives the full tone classification of a single resolved color.
//
// It is pure and stateless: the same pixel always yields the same Result,
// and it is safe to call concurrently.
func Classify(p colorspace.Pixel) *Result {
	lab := colorspace.RGBToLab(p.R, p.G, p.B)
	ycbcr := colorspace.RGBToYCbCr(p.R, p.G, p.B)
	hsv := colorspace.RGBToHSV(p.R, p.G, p.B)

	ita := ITA(lab)
	warm := warmScore(hsv, lab, ycbcr)
	cool := coolScore(hsv, lab, ycbcr)

	return &Result{
		RGB:        p,
		Hex:        p.Hex(),
		Lab:        lab,
		YCbCr:      ycbcr,
		ITA:        ita,
		Category:   CategoryForITA(ita),
		Undertone:  UndertoneLabel(warm, cool),
		Bias:       biasDescription(lab),
		Confidence: skin.Confidence(ycbcr),
		Metrics: map[string]float64{
			"warm_score": warm,
			"cool_score": cool,
			"saturation": hsv.S,
			"hue":        hsv.H,
			"chroma":     lab.Chroma(),
		},
	}
}

// UndertoneLabel resolves warm/cool scores into a label with a hysteresis
// band: "warm" only when warmScore leads by more than 0.2, "cool" only when
// coolScore does, "neutral" otherwise.
func UndertoneLabel(warmScore, coolScore float64) string {
	switch {
	case warmScore > coolScore+undertoneHysteresis:
		return "warm"
	case coolScore > warmScore+undertoneHysteresis:
		return "cool"
	default:
		return "neutral"
	}
}

// warmScore accumulates warm-undertone evidence in [0, 1]:
// warm hue range membership, positive b* magnitude, and Cr sitting above
// its 128 center.
func warmScore(hsv colorspace.HSVColor, lab colorspace.LabColor, c colorspace.YCbCrColor) float64 {
	score := 0.0

	switch {
	case hsv.H >= 15 && hsv.H <= 60:
		score += 0.4
	case hsv.H >= 340 || hsv.H <= 15:
		score += 0.3
	}

	if lab.B > 0 {
		score += 0.35 * math.Min(lab.B/40.0, 1.0)
	}

	if c.Cr > 128 {
		score += 0.25 * math.Min((c.Cr-128.0)/45.0, 1.0)
	}

	return clamp01(score)
}

// coolScore accumulates cool-undertone evidence in [0, 1]: cool hue range
// membership, negative a* (or the small-a/low-b "blush" signal), and Cb
// sitting above its 128 center.
func coolScore(hsv colorspace.HSVColor, lab colorspace.LabColor, c colorspace.YCbCrColor) float64 {
	score := 0.0

	switch {
	case hsv.H >= 180 && hsv.H < 270:
		score += 0.4
	case hsv.H >= 270 && hsv.H < 340:
		score += 0.3
	}

	if lab.A < 0 {
		score += 0.3 * math.Min(-lab.A/20.0, 1.0)
	} else if lab.A < 8 && lab.B < 12 {
		// Faint pink over low yellow reads as a cool blush.
		score += 0.15
	}

	if c.Cb > 128 {
		score += 0.3 * math.Min((c.Cb-128.0)/45.0, 1.0)
	}

	return clamp01(score)
}

// biasDescription maps the Lab chroma axes onto a human-readable cast
// label via a small fixed decision table.
func biasDescription(lab colorspace.LabColor) string {
	switch {
	case lab.A < 0:
		return "cool/green cast"
	case lab.B < 0:
		return "cool/blue cast"
	case lab.B > 15 && lab.A > 0:
		return "golden/warm cast"
	case lab.A > 5:
		return "rosy/pink cast"
	default:
		return "neutral"
	}
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
