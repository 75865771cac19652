// Package colorspace provides pure color conversion functions between sRGB,
// CIE L*a*b*, BT.601 YCbCr, and HSV.
//
// All conversions are deterministic functions of their inputs with no state
// and no side effects; every function is safe to call concurrently from any
// number of goroutines.
//
// # Conventions
//
//   - sRGB components are 8-bit (0-255).
//   - Lab uses the D65 reference white and the standard CIE ranges
//     (L in 0-100, a/b practically in -128..127).
//   - YCbCr is full-range BT.601 with float components (no quantization).
//   - HSV hue is in degrees, saturation and value in 0-1.
//
// # Accuracy
//
// sRGB -> Lab -> sRGB round trips are accurate to within ±1 per 8-bit
// channel; the error comes from gamma companding and final quantization,
// not from the matrix math.
package colorspace
