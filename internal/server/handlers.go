package server

import (
	"encoding/json"
	"fmt"

	"github.com/tonescope/skintone-mcp/internal/colorspace"
	"github.com/tonescope/skintone-mcp/internal/imaging"
	"github.com/tonescope/skintone-mcp/internal/sampling"
	"github.com/tonescope/skintone-mcp/internal/skin"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "analyze_point").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/analysis function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Tone Analysis
	case "analyze_point":
		return s.handleAnalyzePoint(args)
	case "analyze_region":
		return s.handleAnalyzeRegion(args)
	case "analyze_image":
		return s.handleAnalyzeImage(args)
	case "skin_confidence":
		return s.handleSkinConfidence(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Tone Analysis Handlers ===

type analyzePointArgs struct {
	Path   string `json:"path"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Radius int    `json:"radius"`
}

func (s *Server) handleAnalyzePoint(args json.RawMessage) (interface{}, error) {
	var a analyzePointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Radius == 0 {
		a.Radius = 10
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	px, w, h := imaging.Accessor(img)
	return s.engine.Analyze(px, w, h, sampling.PointRegion{X: a.X, Y: a.Y, Radius: a.Radius})
}

type analyzeRegionArgs struct {
	Path string `json:"path"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

func (s *Server) handleAnalyzeRegion(args json.RawMessage) (interface{}, error) {
	var a analyzeRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	px, w, h := imaging.Accessor(img)
	return s.engine.Analyze(px, w, h, sampling.RectRegion{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2})
}

type analyzeImageArgs struct {
	Path         string `json:"path"`
	Rows         int    `json:"rows"`
	Cols         int    `json:"cols"`
	MaxDimension int    `json:"max_dimension"`
}

func (s *Server) handleAnalyzeImage(args json.RawMessage) (interface{}, error) {
	var a analyzeImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	img = imaging.Downscale(img, a.MaxDimension)
	px, w, h := imaging.Accessor(img)
	return s.engine.AnalyzeGrid(px, w, h, a.Rows, a.Cols)
}

type skinConfidenceArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// skinConfidenceResult reports the raw per-pixel skin likelihood.
type skinConfidenceResult struct {
	Pixel      colorspace.Pixel      `json:"pixel"`
	YCbCr      colorspace.YCbCrColor `json:"ycbcr"`
	Confidence float64               `json:"confidence"`
	LikelySkin bool                  `json:"likely_skin"`
}

func (s *Server) handleSkinConfidence(args json.RawMessage) (interface{}, error) {
	var a skinConfidenceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	px, w, h := imaging.Accessor(img)
	if a.X < 0 || a.X >= w || a.Y < 0 || a.Y >= h {
		return nil, fmt.Errorf("coordinate (%d, %d) outside image bounds %dx%d", a.X, a.Y, w, h)
	}

	p := px(a.X, a.Y)
	ycbcr := colorspace.RGBToYCbCr(p.R, p.G, p.B)
	return &skinConfidenceResult{
		Pixel:      p,
		YCbCr:      ycbcr,
		Confidence: skin.Confidence(ycbcr),
		LikelySkin: skin.IsLikelySkinTone(p),
	}, nil
}
