// Package server implements the MCP (Model Context Protocol) server for skin tone analysis.
//
// This package provides a JSON-RPC 2.0 server that exposes the tone analysis
// pipeline through the MCP protocol. It's designed to work with Claude and other
// MCP-compatible clients, enabling AI systems to measure skin tones in images
// with perceptual precision.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Tone Analysis:
//   - analyze_point: Classify the tone around a single coordinate
//   - analyze_region: Classify the tone of a rectangular region
//   - analyze_image: Whole-image grid analysis with ranked cells and a best aggregate
//   - skin_confidence: Raw per-pixel skin likelihood from YCbCr chroma
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A region containing no usable samples (fully outside the image, or an image
// with no detectable skin anywhere for analyze_image) surfaces as a -32000
// error rather than a fabricated result.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
