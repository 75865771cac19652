// Package cluster groups color samples by perceptual similarity using
// K-means++ in CIE Lab space.
//
// The clustering distance weights the chroma axes (a, b) above lightness,
// because hue and chroma discriminate tone better than brightness does.
// Clustering operates entirely in Lab; centroids are only converted back to
// RGB when a caller asks for a representative color.
//
// Clustering is deterministic given the caller-supplied random source, has
// no internal state, and is safe to run concurrently across invocations.
package cluster
