// Package analysis orchestrates the skin tone analysis pipeline and is the
// core's only public entry point.
//
// The pipeline is a one-way data flow:
//
//	raw pixels -> samples -> filtered samples -> clusters -> dominant color -> classification
//
// Every stage is a pure function over immutable inputs; no stage performs
// I/O and no stage above the sampler touches the image. The engine is safe
// to invoke from multiple goroutines concurrently, each invocation owning
// its own sample sets and clusters. The only shared resource is the source
// pixel buffer, which is read-only during an in-flight analysis; callers
// must not mutate it concurrently.
//
// Sampling and clustering are CPU-bound and may take a while for large
// images or high k. Run Analyze off any interactive goroutine; the core
// has no suspension points or cancellation primitives, so cancellation is
// the caller's job (typically by dropping the work before it starts).
//
// # Failure modes
//
// Degenerate input (a region that produces no samples) surfaces as
// ErrNoSamples rather than a fabricated default color. Hitting the
// clustering iteration cap without convergence is not an error; the last
// assignment is used. Neither condition should ever crash or block the
// caller; the worst case is a less precise or "could not determine"
// result.
package analysis
