package colorspace

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Pixel represents an sRGB color with 8-bit components.
//
// Each component ranges from 0 to 255. Pixel is an immutable value type and
// is the source of every derived color representation in this package.
type Pixel struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex returns the color in "#RRGGBB" format.
func (p Pixel) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", p.R, p.G, p.B)
}

// LabColor represents a color in CIE L*a*b* space (D65 reference white).
//
// L ranges from 0 (black) to 100 (white). The a axis runs green (negative)
// to red (positive) and the b axis runs blue (negative) to yellow (positive);
// both are unbounded in principle but stay within roughly [-128, 127] for
// colors reachable from 8-bit sRGB.
type LabColor struct {
	L float64 `json:"l"` // Lightness: 0-100
	A float64 `json:"a"` // Green-red axis
	B float64 `json:"b"` // Blue-yellow axis
}

// Chroma returns the chromatic intensity sqrt(a² + b²).
func (c LabColor) Chroma() float64 {
	return math.Sqrt(c.A*c.A + c.B*c.B)
}

// YCbCrColor represents a color in ITU-R BT.601 luma/chroma space.
//
// Unlike the integer YCbCr type in the standard library's image/color, the
// components here are kept as floats so downstream chroma-range scoring is
// not distorted by quantization. Y ranges 0-255; Cb and Cr center on 128.
type YCbCrColor struct {
	Y  float64 `json:"y"`  // Luma: 0-255
	Cb float64 `json:"cb"` // Blue-difference chroma, centered on 128
	Cr float64 `json:"cr"` // Red-difference chroma, centered on 128
}

// HSVColor represents a color in HSV space.
type HSVColor struct {
	H float64 `json:"h"` // Hue: 0-360 degrees
	S float64 `json:"s"` // Saturation: 0-1
	V float64 `json:"v"` // Value: 0-1
}

// RGBToLab converts 8-bit sRGB components to CIE L*a*b*.
//
// The conversion uses the D65 white point (Xn=0.95047, Yn=1.0, Zn=1.08883)
// and the standard sRGB piecewise gamma function (linear below 0.04045 on
// the forward path). It is total over the 8-bit input domain, has no side
// effects, and is safe for concurrent use.
//
// go-colorful carries the sRGB linearization and XYZ->Lab math; its Lab
// components are the CIE values scaled by 1/100, so they are rescaled here.
func RGBToLab(r, g, b uint8) LabColor {
	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	l, a, bb := c.Lab()
	return LabColor{L: l * 100.0, A: a * 100.0, B: bb * 100.0}
}

// LabToRGB converts a CIE L*a*b* color back to 8-bit sRGB.
//
// Out-of-gamut results are clamped to the [0, 255] range per channel, so the
// function is total over any Lab input. For colors that originated from
// RGBToLab the round trip is exact to within ±1 per channel (gamma and
// quantization tolerance).
func LabToRGB(lab LabColor) Pixel {
	c := colorful.Lab(lab.L/100.0, lab.A/100.0, lab.B/100.0).Clamped()
	r, g, b := c.RGB255()
	return Pixel{R: r, G: g, B: b}
}

// RGBToYCbCr converts 8-bit sRGB components to float BT.601 YCbCr.
//
// Uses the full-range JPEG-style coefficients:
//
//	Y  =  0.299·R + 0.587·G + 0.114·B
//	Cb = 128 - 0.168736·R - 0.331264·G + 0.5·B
//	Cr = 128 + 0.5·R - 0.418688·G - 0.081312·B
func RGBToYCbCr(r, g, b uint8) YCbCrColor {
	rf, gf, bf := float64(r), float64(g), float64(b)
	return YCbCrColor{
		Y:  0.299*rf + 0.587*gf + 0.114*bf,
		Cb: 128.0 - 0.168736*rf - 0.331264*gf + 0.5*bf,
		Cr: 128.0 + 0.5*rf - 0.418688*gf - 0.081312*bf,
	}
}

// RGBToHSV converts 8-bit sRGB components to HSV.
//
// Hue is in degrees [0, 360); saturation and value are in [0, 1].
func RGBToHSV(r, g, b uint8) HSVColor {
	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	h, s, v := c.Hsv()
	return HSVColor{H: h, S: s, V: v}
}
