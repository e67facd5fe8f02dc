package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/dividenconquer/blurhash-generator/internal/batch"
	"github.com/dividenconquer/blurhash-generator/internal/blurhash"
	"github.com/dividenconquer/blurhash-generator/internal/imaging"
)

// errInvalidArguments marks tool arguments that could not be parsed. Calls
// failing with it are reported as -32602 rather than -32000.
var errInvalidArguments = errors.New("invalid arguments")

// maxDecodePixels bounds the PNG a single blurhash_decode call may render.
const maxDecodePixels = 4096 * 4096

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "blurhash_encode").
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
		if s.cfg.Debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		if errors.Is(err, errInvalidArguments) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "blurhash_encode":
		return s.handleEncode(args)
	case "blurhash_encode_batch":
		return s.handleEncodeBatch(args)
	case "blurhash_decode":
		return s.handleDecode(args)
	case "blurhash_inspect":
		return s.handleInspect(args)
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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments into v. Missing arguments decode as
// an empty object.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

// orDefault returns *p, or def when p is nil.
func orDefault(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// === Image Information ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Encoding ===

type encodeArgs struct {
	Path         string          `json:"path"`
	XComponents  *int            `json:"x_components"`
	YComponents  *int            `json:"y_components"`
	MaxDimension *int            `json:"max_dimension"`
	Region       *imaging.Region `json:"region"`
}

type encodeResult struct {
	Hash         string              `json:"hash"`
	XComponents  int                 `json:"x_components"`
	YComponents  int                 `json:"y_components"`
	Width        int                 `json:"width"`
	Height       int                 `json:"height"`
	AverageColor imaging.ColorResult `json:"average_color"`
}

func (s *Server) handleEncode(args json.RawMessage) (interface{}, error) {
	var a encodeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	nx := orDefault(a.XComponents, s.cfg.XComponents)
	ny := orDefault(a.YComponents, s.cfg.YComponents)
	maxDim := orDefault(a.MaxDimension, s.cfg.MaxDimension)

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	var grid *blurhash.PixelGrid
	if a.Region != nil {
		grid, err = imaging.ToPixelGridRegion(img, *a.Region, maxDim)
		if err != nil {
			return nil, err
		}
		width, height = a.Region.X2-a.Region.X1, a.Region.Y2-a.Region.Y1
	} else {
		grid = imaging.ToPixelGrid(img, maxDim)
	}

	opts := s.cfg.Options()
	hash, err := opts.Encode(grid, nx, ny)
	if err != nil {
		return nil, err
	}
	avg, err := opts.AverageColor(hash)
	if err != nil {
		return nil, err
	}

	return &encodeResult{
		Hash:         hash,
		XComponents:  nx,
		YComponents:  ny,
		Width:        width,
		Height:       height,
		AverageColor: imaging.NewColorResult(avg),
	}, nil
}

type encodeBatchArgs struct {
	Paths       []string `json:"paths"`
	XComponents *int     `json:"x_components"`
	YComponents *int     `json:"y_components"`
	Workers     int      `json:"workers"`
	Limit       int      `json:"limit"`
}

type encodeBatchResult struct {
	Results   []batch.Result `json:"results"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

func (s *Server) handleEncodeBatch(args json.RawMessage) (interface{}, error) {
	var a encodeBatchArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("%w: paths must not be empty", errInvalidArguments)
	}
	if a.Workers <= 0 {
		a.Workers = s.cfg.Workers
	}

	files, err := batch.Collect(a.Paths)
	if err != nil {
		return nil, err
	}

	results := batch.Run(context.Background(), s.cache, batch.Sample(files, a.Limit), batch.Options{
		XComponents:  orDefault(a.XComponents, s.cfg.XComponents),
		YComponents:  orDefault(a.YComponents, s.cfg.YComponents),
		MaxDimension: s.cfg.MaxDimension,
		MaxPixels:    s.cfg.MaxPixels,
		Workers:      a.Workers,
		Codec:        s.cfg.Options(),
		Debug:        s.cfg.Debug,
	})
	ok, failed := batch.Summarize(results)
	if results == nil {
		results = []batch.Result{}
	}
	return &encodeBatchResult{Results: results, Succeeded: ok, Failed: failed}, nil
}

// === Decoding ===

type decodeArgs struct {
	Hash   string  `json:"hash"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Punch  float64 `json:"punch"`
}

type decodeResult struct {
	Hash  string  `json:"hash"`
	Punch float64 `json:"punch"`
	*imaging.RenderResult
}

func (s *Server) handleDecode(args json.RawMessage) (interface{}, error) {
	var a decodeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Width == 0 {
		a.Width = s.cfg.DecodeWidth
	}
	if a.Height == 0 {
		a.Height = s.cfg.DecodeHeight
	}
	if a.Width > 0 && a.Height > maxDecodePixels/a.Width {
		return nil, fmt.Errorf("output %dx%d exceeds %d pixels", a.Width, a.Height, maxDecodePixels)
	}

	opts := s.cfg.Options()
	if a.Punch != 0 {
		opts.Punch = a.Punch
	}

	grid, err := opts.Decode(a.Hash, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	rendered, err := imaging.RenderPNG(imaging.FromPixelGrid(grid))
	if err != nil {
		return nil, err
	}
	return &decodeResult{Hash: a.Hash, Punch: opts.Punch, RenderResult: rendered}, nil
}

type inspectArgs struct {
	Hash string `json:"hash"`
}

type inspectResult struct {
	Hash         string              `json:"hash"`
	XComponents  int                 `json:"x_components"`
	YComponents  int                 `json:"y_components"`
	Length       int                 `json:"length"`
	AverageColor imaging.ColorResult `json:"average_color"`
	MaxAC        float64             `json:"max_ac"`
}

func (s *Server) handleInspect(args json.RawMessage) (interface{}, error) {
	var a inspectArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	opts := s.cfg.Options()
	opts.Punch = 1
	comps, err := opts.DecodeComponents(a.Hash)
	if err != nil {
		return nil, err
	}
	avg, err := opts.AverageColor(a.Hash)
	if err != nil {
		return nil, err
	}

	return &inspectResult{
		Hash:         a.Hash,
		XComponents:  comps.X,
		YComponents:  comps.Y,
		Length:       len(a.Hash),
		AverageColor: imaging.NewColorResult(avg),
		MaxAC:        comps.MaxAC(),
	}, nil
}
