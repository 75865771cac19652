package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/tonescope/skintone-mcp/internal/tone"
)

// createTestImageFile creates a solid-color test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp(t.TempDir(), "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// A plausible medium warm skin tone used across the handler tests.
var testSkin = color.RGBA{200, 150, 120, 255}

// callTool drives a tools/call request through the server and returns the response.
func callTool(t *testing.T, s *Server, name string, arguments map[string]interface{}) *MCPResponse {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": arguments,
	})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	return s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
}

// toolResultText extracts the JSON text payload from a successful tool response.
func toolResultText(t *testing.T, resp *MCPResponse) string {
	t.Helper()

	if resp == nil {
		t.Fatal("nil response")
	}
	if resp.Error != nil {
		t.Fatalf("unexpected tool error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) == 0 {
		t.Fatal("Result missing content array")
	}
	text, ok := content[0]["text"].(string)
	if !ok {
		t.Fatal("content[0] missing text")
	}
	return text
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, testSkin)

	resp := callTool(t, s, "image_load", map[string]interface{}{"path": imgPath})
	text := toolResultText(t, resp)

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}
	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 200, 150, testSkin)

	resp := callTool(t, s, "image_dimensions", map[string]interface{}{"path": imgPath})
	text := toolResultText(t, resp)

	var dims struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	if err := json.Unmarshal([]byte(text), &dims); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}
	if dims.Width != 200 || dims.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", dims.Width, dims.Height)
	}
}

func TestHandleToolsCall_AnalyzePoint(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 100, testSkin)

	resp := callTool(t, s, "analyze_point", map[string]interface{}{
		"path": imgPath,
		"x":    50,
		"y":    50,
	})
	text := toolResultText(t, resp)

	var result tone.Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}

	if result.Category.Tone != "medium" {
		t.Errorf("tone: got %s (%s), want medium", result.Category.Tone, result.Category.Name)
	}
	if result.Undertone != "warm" {
		t.Errorf("undertone: got %s, want warm", result.Undertone)
	}
	if result.Confidence <= 0.5 {
		t.Errorf("confidence: got %f, want > 0.5", result.Confidence)
	}
}

func TestHandleToolsCall_AnalyzeRegion(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 120, 120, testSkin)

	resp := callTool(t, s, "analyze_region", map[string]interface{}{
		"path": imgPath,
		"x1":   10, "y1": 10, "x2": 110, "y2": 110,
	})
	text := toolResultText(t, resp)

	var result tone.Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}
	if result.Category.Tone != "medium" {
		t.Errorf("tone: got %s, want medium", result.Category.Tone)
	}
}

func TestHandleToolsCall_AnalyzeRegionOutOfBounds(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 50, 50, testSkin)

	resp := callTool(t, s, "analyze_region", map[string]interface{}{
		"path": imgPath,
		"x1":   500, "y1": 500, "x2": 600, "y2": 600,
	})

	if resp.Error == nil {
		t.Fatal("expected error for out-of-bounds region")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_AnalyzeImage(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 300, 300, testSkin)

	resp := callTool(t, s, "analyze_image", map[string]interface{}{"path": imgPath})
	text := toolResultText(t, resp)

	var result struct {
		Cells []struct {
			Cell struct {
				Row int `json:"row"`
				Col int `json:"col"`
			} `json:"cell"`
			Result *tone.Result `json:"result"`
		} `json:"cells"`
		Best *tone.Result `json:"best"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}

	// Uniform skin image: every cell of the default 3x3 grid qualifies
	if len(result.Cells) != 9 {
		t.Errorf("cells: got %d, want 9", len(result.Cells))
	}
	if result.Best == nil {
		t.Fatal("missing best aggregate result")
	}
	if result.Best.Category.Tone != "medium" {
		t.Errorf("best tone: got %s, want medium", result.Best.Category.Tone)
	}
}

func TestHandleToolsCall_AnalyzeImageDownscaled(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 400, 300, testSkin)

	resp := callTool(t, s, "analyze_image", map[string]interface{}{
		"path":          imgPath,
		"rows":          2,
		"cols":          2,
		"max_dimension": 100,
	})
	text := toolResultText(t, resp)

	var result struct {
		Cells []json.RawMessage `json:"cells"`
		Best  *tone.Result      `json:"best"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}
	if len(result.Cells) != 4 {
		t.Errorf("cells: got %d, want 4", len(result.Cells))
	}
	if result.Best == nil || result.Best.Undertone != "warm" {
		t.Errorf("best undertone after downscale: got %+v", result.Best)
	}
}

func TestHandleToolsCall_AnalyzeImageNoSkin(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 200, 200, color.RGBA{40, 90, 200, 255})

	resp := callTool(t, s, "analyze_image", map[string]interface{}{"path": imgPath})

	if resp.Error == nil {
		t.Fatal("expected error for image without skin")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_SkinConfidence(t *testing.T) {
	s := New()

	tests := []struct {
		name       string
		fill       color.RGBA
		wantLikely bool
	}{
		{"skin pixel", testSkin, true},
		{"sky pixel", color.RGBA{110, 160, 220, 255}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imgPath := createTestImageFile(t, 20, 20, tt.fill)

			resp := callTool(t, s, "skin_confidence", map[string]interface{}{
				"path": imgPath,
				"x":    10,
				"y":    10,
			})
			text := toolResultText(t, resp)

			var result struct {
				Confidence float64 `json:"confidence"`
				LikelySkin bool    `json:"likely_skin"`
			}
			if err := json.Unmarshal([]byte(text), &result); err != nil {
				t.Fatalf("failed to parse result: %v", err)
			}

			if result.LikelySkin != tt.wantLikely {
				t.Errorf("likely_skin: got %v, want %v", result.LikelySkin, tt.wantLikely)
			}
			if tt.wantLikely && result.Confidence <= 0.5 {
				t.Errorf("confidence: got %f, want > 0.5", result.Confidence)
			}
			if !tt.wantLikely && result.Confidence > 0.1 {
				t.Errorf("confidence: got %f, want near 0", result.Confidence)
			}
		})
	}
}

func TestHandleToolsCall_SkinConfidenceOutOfBounds(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 20, 20, testSkin)

	resp := callTool(t, s, "skin_confidence", map[string]interface{}{
		"path": imgPath,
		"x":    100,
		"y":    100,
	})

	if resp.Error == nil {
		t.Fatal("expected error for out-of-bounds coordinate")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()

	resp := callTool(t, s, "image_load", map[string]interface{}{
		"path": "/nonexistent/image.png",
	})

	if resp.Error == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := New()

	resp := callTool(t, s, "image_levitate", map[string]interface{}{"path": "/x.png"})

	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name": 42}`),
	})

	if resp.Error == nil {
		t.Fatal("expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("error code: got %d, want -32602", resp.Error.Code)
	}
}
