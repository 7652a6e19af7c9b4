package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/ironsheep/cvhelper-mcp/internal/cvhelper"
	"github.com/ironsheep/cvhelper-mcp/internal/detection"
	"github.com/ironsheep/cvhelper-mcp/internal/imaging"
	"github.com/ironsheep/cvhelper-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "cv_dilate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// paramError marks an error caused by the caller's arguments.
type paramError struct {
	err error
}

func (e *paramError) Error() string { return e.err.Error() }
func (e *paramError) Unwrap() error { return e.err }

func invalidParams(format string, a ...interface{}) error {
	return &paramError{err: fmt.Errorf(format, a...)}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Bad arguments and unknown tools return code -32602; any other tool
// failure returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug {
			log.Printf("Tool %s failed: %v", params.Name, err)
		}
		var pe *paramError
		if errors.As(err, &pe) || errors.Is(err, cvhelper.ErrInvalidArgument) {
			return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, CodeToolFailure, "Tool execution failed", err.Error())
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

// toolOps maps the single-operation image tools to their entries in imageOps.
var toolOps = map[string]string{
	"image_crop":       "crop",
	"cv_dilate":        "dilate",
	"cv_erode":         "erode",
	"cv_morph_open":    "morph_open",
	"cv_morph_close":   "morph_close",
	"cv_normalize":     "normalize",
	"cv_resize":        "resize",
	"cv_convert_color": "convert_color",
	"cv_blur_gaussian": "blur_gaussian",
	"cv_blur_median":   "blur_median",
	"cv_threshold":     "threshold",
	"cv_canny":         "canny",
	"cv_rotate":        "rotate",
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if op, ok := toolOps[name]; ok {
		return s.handleImageOp(imageOps[op], args)
	}

	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_cache_clear":
		return s.handleCacheClear()
	case "cv_pipeline":
		return s.handlePipeline(args)
	case "cv_find_contours":
		return s.handleFindContours(args)
	case "cv_detect_shapes":
		return s.handleDetectShapes(args)
	case "image_ocr":
		return s.handleOCR(args)
	default:
		return nil, invalidParams("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. An empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments into v. Missing arguments decode as
// an empty object.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return invalidParams("invalid arguments: %v", err)
	}
	return nil
}

// loadImage returns the decoded image at path from the cache.
func (s *Server) loadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, invalidParams("path is required")
	}
	return s.cache.Load(path)
}

// imageResult encodes img and, when outputPath is set, also writes it there.
// A cached copy of outputPath is dropped so later loads see the new file.
func (s *Server) imageResult(img image.Image, outputPath string) (*imaging.ImageResult, error) {
	res, err := imaging.EncodeResult(img)
	if err != nil {
		return nil, err
	}
	if outputPath != "" {
		if err := imaging.SaveImage(img, outputPath); err != nil {
			return nil, err
		}
		s.cache.Evict(outputPath)
		res.OutputPath = outputPath
	}
	return res, nil
}

// parseRegion resolves a region argument against frame. The argument is
// either a region name (see imaging.NamedRegion) or an object with x1, y1,
// x2, y2 relative to frame.Min. A missing region selects the whole frame.
func parseRegion(raw json.RawMessage, frame image.Rectangle) (image.Rectangle, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return frame, nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		rect, err := imaging.NamedRegion(frame, name)
		if err != nil {
			return image.Rectangle{}, &paramError{err: err}
		}
		return rect, nil
	}

	var r struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return image.Rectangle{}, invalidParams("region must be a name or an object with x1, y1, x2, y2: %v", err)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return image.Rectangle{}, invalidParams("invalid region (%d,%d)-(%d,%d): x1 must be < x2, y1 must be < y2", r.X1, r.Y1, r.X2, r.Y2)
	}
	rect := image.Rect(r.X1, r.Y1, r.X2, r.Y2).Add(frame.Min)
	if !rect.In(frame) {
		return image.Rectangle{}, invalidParams("region (%d,%d)-(%d,%d) outside image (%dx%d)", r.X1, r.Y1, r.X2, r.Y2, frame.Dx(), frame.Dy())
	}
	return rect, nil
}

// === Basic Image Information Handlers ===

type imageArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

func (s *Server) handleCacheClear() (interface{}, error) {
	n := s.cache.Len()
	s.cache.Clear()
	return map[string]int{"cleared": n}, nil
}

// === Image Operation Handlers ===

func (s *Server) handleImageOp(op imageOp, args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	step, err := op(args)
	if err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := step(img)
	if err != nil {
		return nil, err
	}
	return s.imageResult(out, a.OutputPath)
}

type pipelineStep struct {
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args"`
}

type pipelineArgs struct {
	imageArgs
	Steps []pipelineStep `json:"steps"`
}

type pipelineResult struct {
	*imaging.ImageResult
	Steps []string `json:"steps"`
}

func (s *Server) handlePipeline(args json.RawMessage) (interface{}, error) {
	var a pipelineArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	if len(a.Steps) == 0 {
		return nil, invalidParams("steps must name at least one operation")
	}

	// Decode and check every step's arguments before doing any work.
	steps := make([]imageStep, len(a.Steps))
	names := make([]string, len(a.Steps))
	for i, step := range a.Steps {
		name := strings.TrimPrefix(step.Op, "cv_")
		op, ok := imageOps[name]
		if !ok {
			return nil, invalidParams("step %d: unknown operation %q", i+1, step.Op)
		}
		run, err := op(step.Args)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}
		steps[i], names[i] = run, name
	}

	img, err := s.loadImage(a.Path)
	if err != nil {
		return nil, err
	}
	for i, run := range steps {
		if img, err = run(img); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, names[i], err)
		}
	}

	res, err := s.imageResult(img, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &pipelineResult{ImageResult: res, Steps: names}, nil
}

// === Contour and Shape Handlers ===

type findContoursArgs struct {
	Path          string          `json:"path"`
	Threshold     *int            `json:"threshold"`
	DarkOnLight   bool            `json:"dark_on_light"`
	MinArea       float64         `json:"min_area"`
	Region        json.RawMessage `json:"region"`
	IncludePoints bool            `json:"include_points"`
}

type contoursResult struct {
	*detection.ShapesResult

	// Region is the searched area; shape coordinates are relative to its
	// top-left corner.
	Region    detection.Bounds `json:"region"`
	Threshold int              `json:"threshold"`
}

// handleFindContours binarizes the image, traces contours over the whole
// image and reports those lying entirely inside the region, translated into
// region coordinates.
func (s *Server) handleFindContours(args json.RawMessage) (interface{}, error) {
	var a findContoursArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.Path)
	if err != nil {
		return nil, err
	}

	level := -1
	if a.Threshold != nil {
		if *a.Threshold < 0 || *a.Threshold > 255 {
			return nil, invalidParams("threshold %d must be within [0, 255]", *a.Threshold)
		}
		level = *a.Threshold
	}
	binary, level, err := detection.Binarize(img, level, a.DarkOnLight)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	frame := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	region, err := parseRegion(a.Region, frame)
	if err != nil {
		return nil, err
	}

	contours, err := cvhelper.FindContours(binary)
	if err != nil {
		return nil, err
	}
	inside := make([]*cvhelper.Contour, 0, len(contours))
	for _, c := range contours {
		if c.BoundingRect().In(region) {
			inside = append(inside, cvhelper.ScaleContourToRect(c, region))
		}
	}

	sample := img
	if region != frame {
		if sample, err = imaging.Crop(img, region.Add(bounds.Min)); err != nil {
			return nil, err
		}
	}

	return &contoursResult{
		ShapesResult: detection.DescribeContours(sample, inside, a.MinArea, a.IncludePoints),
		Region:       detection.Bounds{X1: region.Min.X, Y1: region.Min.Y, X2: region.Max.X, Y2: region.Max.Y},
		Threshold:    level,
	}, nil
}

type detectShapesArgs struct {
	Path        string  `json:"path"`
	MinArea     float64 `json:"min_area"`
	DarkOnLight bool    `json:"dark_on_light"`
}

func (s *Server) handleDetectShapes(args json.RawMessage) (interface{}, error) {
	var a detectShapesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.Path)
	if err != nil {
		return nil, err
	}
	return detection.DetectShapes(img, a.MinArea, a.DarkOnLight)
}

// === OCR Handlers ===

type ocrArgs struct {
	Path          string          `json:"path"`
	Language      string          `json:"language"`
	Preprocess    bool            `json:"preprocess"`
	MedianSize    int             `json:"median_size"`
	Region        json.RawMessage `json:"region"`
	Whitelist     string          `json:"whitelist"`
	MinConfidence float64         `json:"min_confidence"`
}

func (s *Server) handleOCR(args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.cfg.OCRLanguage
	}
	img, err := s.loadImage(a.Path)
	if err != nil {
		return nil, err
	}
	region, err := parseRegion(a.Region, img.Bounds())
	if err != nil {
		return nil, err
	}

	return ocr.Recognize(img, ocr.Options{
		Language:      a.Language,
		Region:        region,
		Preprocess:    a.Preprocess,
		MedianSize:    a.MedianSize,
		Whitelist:     a.Whitelist,
		MinConfidence: a.MinConfidence,
	})
}
