package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/image-compose-mcp/internal/config"
	"github.com/ironsheep/image-compose-mcp/internal/document"
	"github.com/ironsheep/image-compose-mcp/internal/geometry"
	"github.com/ironsheep/image-compose-mcp/internal/imaging"
	"github.com/ironsheep/image-compose-mcp/internal/page"
	"github.com/ironsheep/image-compose-mcp/internal/planner"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "document_combine").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.log.Debug().Str("tool", params.Name).Msg("tool call")
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Str("tool", params.Name).Err(err).Msg("tool failed")
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Planning
	case "image_plan_crop":
		return s.handlePlanCrop(args)
	case "image_plan_rotation":
		return s.handlePlanRotation(args)
	case "image_plan_fit":
		return s.handlePlanFit(args)

	// Rendering
	case "image_crop_resize":
		return s.handleCropResize(ctx, args)

	// Documents
	case "document_plan":
		return s.handleDocumentPlan(ctx, args)
	case "document_combine":
		return s.handleDocumentCombine(ctx, args)

	// Sequence Editing
	case "sequence_move":
		return s.handleSequenceMove(args)
	case "sequence_remove":
		return s.handleSequenceRemove(args)

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

// unmarshalArgs decodes tool arguments, treating a missing object as empty.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Basic Image Information Handlers ===

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

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Planning Handlers ===

type planCropArgs struct {
	Path            string  `json:"path"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	TargetWidth     float64 `json:"target_width"`
	TargetHeight    float64 `json:"target_height"`
	LockAspectRatio *bool   `json:"lock_aspect_ratio"`
	AllowUpscale    *bool   `json:"allow_upscale"`
}

// sourceSize returns the explicit width/height or the size of the image at path.
func (s *Server) sourceSize(path string, w, h float64) (geometry.Dimension, error) {
	if path == "" {
		return geometry.Px(w, h), nil
	}
	src, err := s.cache.Load(path)
	if err != nil {
		return geometry.Dimension{}, err
	}
	return src.Size, nil
}

func (s *Server) handlePlanCrop(args json.RawMessage) (interface{}, error) {
	var a planCropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	source, err := s.sourceSize(a.Path, a.Width, a.Height)
	if err != nil {
		return nil, err
	}

	opts := s.defaults.Crop
	opts.TargetSize = config.Size{Width: a.TargetWidth, Height: a.TargetHeight}
	applyBool(&opts.LockAspectRatio, a.LockAspectRatio)
	applyBool(&opts.AllowUpscale, a.AllowUpscale)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return planner.PlanCrop(source, opts.Target(), opts.LockAspectRatio, opts.AllowUpscale)
}

type planRotationArgs struct {
	Path   string  `json:"path"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`
}

func (s *Server) handlePlanRotation(args json.RawMessage) (interface{}, error) {
	var a planRotationArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	source, err := s.sourceSize(a.Path, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return planner.PlanRotation(source, a.Angle)
}

type planFitArgs struct {
	DrawableWidth  float64 `json:"drawable_width"`
	DrawableHeight float64 `json:"drawable_height"`
	ContentWidth   float64 `json:"content_width"`
	ContentHeight  float64 `json:"content_height"`
	Strategy       string  `json:"strategy"`
}

func (s *Server) handlePlanFit(args json.RawMessage) (interface{}, error) {
	var a planFitArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	strategy, err := planner.ParseStrategy(a.Strategy)
	if err != nil {
		return nil, err
	}
	return planner.PlanFit(
		geometry.Mm(a.DrawableWidth, a.DrawableHeight),
		geometry.Mm(a.ContentWidth, a.ContentHeight),
		strategy,
	)
}

// === Rendering Handlers ===

type cropResizeArgs struct {
	Path            string       `json:"path"`
	TargetWidth     float64      `json:"target_width"`
	TargetHeight    float64      `json:"target_height"`
	MinSize         *config.Size `json:"min_size"`
	MaxSize         *config.Size `json:"max_size"`
	LockAspectRatio *bool        `json:"lock_aspect_ratio"`
	AllowUpscale    *bool        `json:"allow_upscale"`
	BackgroundColor *string      `json:"background_color"`
	OutputFormat    *string      `json:"output_format"`
	JPEGQuality     *float64     `json:"jpeg_quality"`
	OutputPath      string       `json:"output_path"`
}

type cropResizeResult struct {
	imaging.CropResult
	Plan      planner.CropPlan `json:"plan"`
	SavedPath string           `json:"saved_path,omitempty"`
}

func (s *Server) handleCropResize(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a cropResizeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	opts := s.defaults.Crop
	opts.TargetSize = config.Size{Width: a.TargetWidth, Height: a.TargetHeight}
	opts.MinSize = a.MinSize
	opts.MaxSize = a.MaxSize
	applyBool(&opts.LockAspectRatio, a.LockAspectRatio)
	applyBool(&opts.AllowUpscale, a.AllowUpscale)
	if a.BackgroundColor != nil {
		opts.BackgroundColor = *a.BackgroundColor
	}
	if a.OutputFormat != nil {
		opts.OutputFormat = *a.OutputFormat
	}
	if a.JPEGQuality != nil {
		opts.JPEGQuality = *a.JPEGQuality
	}

	out, err := s.pipeline.CropFile(ctx, a.Path, opts)
	if err != nil {
		return nil, err
	}

	res := &cropResizeResult{CropResult: out.CropResult, Plan: out.Plan}
	if a.OutputPath == "" {
		res.ImageBase64 = base64.StdEncoding.EncodeToString(out.Data)
		return res, nil
	}

	path := outputPath(a.OutputPath, out.FileName)
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write crop: %w", err)
	}
	res.SavedPath = path
	return res, nil
}

// === Document Handlers ===

type documentArgs struct {
	Paths      []string        `json:"paths"`
	Options    json.RawMessage `json:"options"`
	OutputPath string          `json:"output_path"`
}

// documentOptions overlays the JSON options object onto the configured
// defaults; fields it does not mention keep their default.
func (s *Server) documentOptions(raw json.RawMessage) (config.DocumentOptions, error) {
	opts := s.defaults.Document
	if err := unmarshalArgs(raw, &opts); err != nil {
		return config.DocumentOptions{}, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

func refs(paths []string) []page.ImageRef {
	out := make([]page.ImageRef, len(paths))
	for i, p := range paths {
		out[i] = page.ImageRef(p)
	}
	return out
}

func (s *Server) handleDocumentPlan(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a documentArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.documentOptions(a.Options)
	if err != nil {
		return nil, err
	}
	return s.pipeline.Plan(ctx, refs(a.Paths), opts)
}

type documentCombineResult struct {
	Path      string            `json:"path"`
	FileName  string            `json:"file_name"`
	PageCount int               `json:"page_count"`
	Bytes     int               `json:"bytes"`
	Metadata  document.Metadata `json:"metadata"`
}

func (s *Server) handleDocumentCombine(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a documentArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.documentOptions(a.Options)
	if err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, fmt.Errorf("output_path is required")
	}

	fileName := opts.OutputFileName
	if fileName == "" {
		fileName = document.DefaultFileName
	}
	path := outputPath(a.OutputPath, fileName)

	// Write next to the target and rename, so a failed run leaves no file.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".combine-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	res, err := s.pipeline.Combine(ctx, refs(a.Paths), opts, tmp, nil)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("failed to move output into place: %w", err)
	}

	return &documentCombineResult{
		Path:      path,
		FileName:  res.Document.FileName,
		PageCount: res.PageCount,
		Bytes:     res.Bytes,
		Metadata:  res.Document.Metadata,
	}, nil
}

// === Sequence Handlers ===

type sequenceArgs struct {
	Paths []string `json:"paths"`
	From  int      `json:"from"`
	To    int      `json:"to"`
	Index int      `json:"index"`
}

type sequenceResult struct {
	Paths []page.ImageRef `json:"paths"`
}

func (s *Server) handleSequenceMove(args json.RawMessage) (interface{}, error) {
	var a sequenceArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	seq, err := page.Move(refs(a.Paths), a.From, a.To)
	if err != nil {
		return nil, err
	}
	return &sequenceResult{Paths: seq}, nil
}

func (s *Server) handleSequenceRemove(args json.RawMessage) (interface{}, error) {
	var a sequenceArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	seq, err := page.Remove(refs(a.Paths), a.Index)
	if err != nil {
		return nil, err
	}
	return &sequenceResult{Paths: seq}, nil
}

// === Helpers ===

func applyBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// outputPath joins name onto p when p is an existing directory.
func outputPath(p, name string) string {
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return filepath.Join(p, name)
	}
	return p
}
