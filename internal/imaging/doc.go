// Package imaging bridges decoded images into the analysis pipeline.
//
// It owns the collaborator-facing concerns the core deliberately excludes:
// loading and caching image files, adapting image.Image values into the
// pixel accessor the sampler consumes, and bounding very large photos
// before whole-image analysis. The core packages never parse file formats
// or hold image handles; everything they see arrives through the accessor.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Accessors are read-only views; the
// caller must not mutate the underlying image while an analysis that reads
// through its accessor is in flight.
package imaging
