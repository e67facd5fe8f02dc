package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var regionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
		"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
		"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
		"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
	},
	"required":    []string{"x1", "y1", "x2", "y2"},
	"description": "Optional region to encode. If omitted, encodes the entire image.",
}

func componentSchema(axis string, def int) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"minimum":     1,
		"maximum":     9,
		"description": "Number of " + axis + " components (1-9)",
		"default":     def,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and color depth.",
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

		// Encoding
		{
			Name:        "blurhash_encode",
			Description: "Encode an image file (or a region of it) as a BlurHash string. Returns the hash and the average color it encodes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x_components": componentSchema("horizontal", 4),
					"y_components": componentSchema("vertical", 3),
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Shrink the image so its longest side is at most this many pixels before encoding. 0 encodes at full size. Default 64",
						"default":     64,
					},
					"region": regionSchema,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "blurhash_encode_batch",
			Description: "Encode many image files concurrently. Directories are searched recursively for supported images. Images over the configured pixel limit are reported as errors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Image files or directories",
					},
					"x_components": componentSchema("horizontal", 4),
					"y_components": componentSchema("vertical", 3),
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Number of concurrent encoders (default: number of CPUs)",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Encode only the first N files found (default: all)",
					},
				},
				"required": []string{"paths"},
			},
		},

		// Decoding
		{
			Name:        "blurhash_decode",
			Description: "Decode a BlurHash string into a placeholder image and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hash": map[string]interface{}{
						"type":        "string",
						"description": "BlurHash string",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Output width in pixels (default 32)",
						"default":     32,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Output height in pixels (default 32)",
						"default":     32,
					},
					"punch": map[string]interface{}{
						"type":        "number",
						"description": "Contrast multiplier for the AC components (default 1.0)",
						"default":     1.0,
					},
				},
				"required": []string{"hash"},
			},
		},
		{
			Name:        "blurhash_inspect",
			Description: "Validate a BlurHash string and report its component counts, length, average color and maximum AC magnitude.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hash": map[string]interface{}{
						"type":        "string",
						"description": "BlurHash string",
					},
				},
				"required": []string{"hash"},
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
