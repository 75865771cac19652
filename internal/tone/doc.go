// Package tone classifies a resolved skin color by depth, undertone, and
// perceptual color bias.
//
// Depth classification uses the Individual Typology Angle (ITA), a
// dermatological metric computed from Lab lightness and the blue-yellow
// chroma axis, bucketed by a fixed ordered table. Undertone combines hue
// range membership, Lab chroma signs, and YCbCr chroma deviations into
// warm and cool scores, resolved through a hysteresis band so near-boundary
// colors label as neutral rather than flapping.
package tone
