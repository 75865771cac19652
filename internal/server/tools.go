package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and file size. Caches the decoded image for subsequent analysis calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Tone Analysis
		{
			Name:        "analyze_point",
			Description: "Analyze the skin tone around a single point. Samples a circular neighborhood, rejects outliers, clusters the samples perceptually and returns the dominant tone with ITA category, undertone and confidence.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"radius": map[string]interface{}{
						"type":        "integer",
						"description": "Sampling radius in pixels around the point. Default 10",
						"default":     10,
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "analyze_region",
			Description: "Analyze the skin tone of a rectangular region. Returns the dominant tone with ITA category, undertone, bias and confidence.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "analyze_image",
			Description: "Analyze the whole image over a sampling grid. Returns one result per grid cell containing likely skin, ranked by skin confidence, plus a single best aggregate tone.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"rows": map[string]interface{}{
						"type":        "integer",
						"description": "Number of grid rows. Default 3",
						"default":     3,
					},
					"cols": map[string]interface{}{
						"type":        "integer",
						"description": "Number of grid columns. Default 3",
						"default":     3,
					},
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale the image so its longer side is at most this many pixels before analysis. 0 or omitted disables scaling",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "skin_confidence",
			Description: "Get the raw skin-likelihood confidence (0.0 to 1.0) of the pixel at a coordinate, computed from YCbCr chroma distance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
