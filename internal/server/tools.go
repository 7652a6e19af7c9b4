package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Shared schema fragments.
var (
	pathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
	outputPathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Optional path to also write the result to. The format follows the extension (png, jpg, gif, tif, bmp).",
	}
	regionProperty = map[string]interface{}{
		"description": "Region name (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center) or an object {x1, y1, x2, y2} with exclusive x2/y2",
		"oneOf": []interface{}{
			map[string]interface{}{
				"type": "string",
				"enum": []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
			},
			map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x1": map[string]interface{}{"type": "integer"},
					"y1": map[string]interface{}{"type": "integer"},
					"x2": map[string]interface{}{"type": "integer"},
					"y2": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"x1", "y1", "x2", "y2"},
			},
		},
	}
	kernelSizeProperty = map[string]interface{}{
		"type":        "integer",
		"description": "Kernel size in pixels. Default 3",
		"default":     3,
	}
)

// imageTool builds the schema of a tool that reads the image at path and
// returns a new image. props holds the tool's own parameters.
func imageTool(name, description string, props map[string]interface{}, required ...string) Tool {
	properties := map[string]interface{}{
		"path":        pathProperty,
		"output_path": outputPathProperty,
	}
	for k, v := range props {
		properties[k] = v
	}
	return Tool{
		Name:        name,
		Description: description,
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   append([]string{"path"}, required...),
		},
	}
}

// morphProperties are the parameters of cv_dilate and cv_erode.
func morphProperties() map[string]interface{} {
	return map[string]interface{}{
		"kernel_size": kernelSizeProperty,
		"shape": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"rect", "cross", "ellipse"},
			"description": "Structuring element shape. Default rect",
			"default":     "rect",
		},
	}
}

// morphExProperties are the parameters of cv_morph_open and cv_morph_close.
func morphExProperties() map[string]interface{} {
	return map[string]interface{}{
		"size": map[string]interface{}{
			"type":        "integer",
			"description": "Side of the square structuring element. Default 3",
			"default":     3,
		},
		"iterations": map[string]interface{}{
			"type":        "integer",
			"description": "Number of erode/dilate passes. Default 1",
			"default":     1,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and channel count. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
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
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_cache_clear",
			Description: "Drop all cached images so that changed files are decoded again.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		imageTool("image_crop",
			"Crop a named or rectangular region and return it as a base64-encoded PNG.",
			map[string]interface{}{"region": regionProperty}, "region"),

		// Morphology
		imageTool("cv_dilate",
			"Dilate: replace every pixel with the maximum under the structuring element. Color images are processed per channel.",
			morphProperties()),
		imageTool("cv_erode",
			"Erode: replace every pixel with the minimum under the structuring element. Color images are processed per channel.",
			morphProperties()),
		imageTool("cv_morph_open",
			"Morphological opening (erode, then dilate) with a square element. Removes bright specks smaller than the element.",
			morphExProperties()),
		imageTool("cv_morph_close",
			"Morphological closing (dilate, then erode) with a square element. Fills dark holes smaller than the element.",
			morphExProperties()),

		// Intensity
		imageTool("cv_normalize",
			"Linearly stretch intensities so the darkest pixel maps to min and the brightest to max. Color channels share one range.",
			map[string]interface{}{
				"min": map[string]interface{}{
					"type":        "integer",
					"description": "Lower bound of the output range. Default 0",
					"default":     0,
				},
				"max": map[string]interface{}{
					"type":        "integer",
					"description": "Upper bound of the output range. Default 255",
					"default":     255,
				},
			}),
		imageTool("cv_resize",
			"Shrink the image by a factor with bicubic interpolation: 2 halves each dimension, 0.5 doubles it.",
			map[string]interface{}{
				"factor": map[string]interface{}{
					"type":        "number",
					"description": "Divisor applied to width and height (> 0)",
				},
			}, "factor"),
		imageTool("cv_convert_color",
			"Convert an RGB image to gray or to HSV, XYZ, HLS or Luv stored as three 8-bit channels.",
			map[string]interface{}{
				"space": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"gray", "hsv", "xyz", "hls", "luv"},
					"description": "Target color space",
				},
			}, "space"),

		// Blur
		imageTool("cv_blur_gaussian",
			"Gaussian blur with an odd square kernel.",
			map[string]interface{}{
				"kernel_size": kernelSizeProperty,
				"sigma_x": map[string]interface{}{
					"type":        "number",
					"description": "Horizontal standard deviation. 0 derives it from the kernel size",
				},
				"sigma_y": map[string]interface{}{
					"type":        "number",
					"description": "Vertical standard deviation. 0 uses sigma_x",
				},
			}),
		imageTool("cv_blur_median",
			"Median blur with an odd square kernel. Removes salt-and-pepper noise while keeping edges.",
			map[string]interface{}{"kernel_size": kernelSizeProperty}),

		// Threshold and edges
		imageTool("cv_threshold",
			"Threshold the image. binary and tozero compare each pixel with value; otsu and otsu_tozero pick the level automatically and need a grayscale image.",
			map[string]interface{}{
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{ModeBinary, ModeToZero, ModeOtsu, ModeOtsuToZero},
					"description": "Threshold mode. Default binary",
					"default":     ModeBinary,
				},
				"value": map[string]interface{}{
					"type":        "integer",
					"description": "Threshold level for binary and tozero. Pixels above it pass",
				},
				"max_value": map[string]interface{}{
					"type":        "integer",
					"description": "Value written for passing pixels in binary modes. Default 255",
					"default":     255,
				},
			}),
		imageTool("cv_canny",
			"Canny edge detection. Returns a grayscale image with 255 on edges.",
			map[string]interface{}{
				"low_threshold": map[string]interface{}{
					"type":        "number",
					"description": "Weak edge gradient threshold",
				},
				"high_threshold": map[string]interface{}{
					"type":        "number",
					"description": "Strong edge gradient threshold",
				},
			}, "low_threshold", "high_threshold"),

		// Geometry
		imageTool("cv_rotate",
			"Rotate (and optionally scale) the image around a center. Positive angles turn counter-clockwise. The output keeps the input size; uncovered pixels are black.",
			map[string]interface{}{
				"angle": map[string]interface{}{
					"type":        "number",
					"description": "Rotation angle",
				},
				"unit": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"radians", "degrees"},
					"description": "Unit of angle. Default radians",
					"default":     "radians",
				},
				"center_x": map[string]interface{}{
					"type":        "number",
					"description": "Rotation center X. Default image center",
				},
				"center_y": map[string]interface{}{
					"type":        "number",
					"description": "Rotation center Y. Default image center",
				},
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Scale factor. Default 1.0",
					"default":     1.0,
				},
			}, "angle"),

		// Composition
		imageTool("cv_pipeline",
			"Apply a sequence of operations in order and return the final image. Each step names an operation (crop, dilate, erode, morph_open, morph_close, normalize, resize, convert_color, blur_gaussian, blur_median, threshold, canny, rotate) and takes the same arguments as the matching tool.",
			map[string]interface{}{
				"steps": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"op": map[string]interface{}{
								"type":        "string",
								"description": "Operation name, with or without the cv_ prefix",
							},
							"args": map[string]interface{}{
								"type":        "object",
								"description": "Operation arguments",
							},
						},
						"required": []string{"op"},
					},
				},
			}, "steps"),

		// Contours and shapes
		{
			Name:        "cv_find_contours",
			Description: "Binarize the image and trace the outer contours of the foreground. Each contour is reported with bounds, centroid, area, perimeter, shape scores and kind, relative to the region's top-left corner.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Gray level separating foreground from background. Default: Otsu's method",
					},
					"dark_on_light": map[string]interface{}{
						"type":        "boolean",
						"description": "Treat dark pixels as foreground. Default false",
						"default":     false,
					},
					"min_area": map[string]interface{}{
						"type":        "number",
						"description": "Skip contours enclosing less area (pixels). Default 0",
					},
					"region": regionProperty,
					"include_points": map[string]interface{}{
						"type":        "boolean",
						"description": "Include every border pixel of each contour. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cv_detect_shapes",
			Description: "Find shapes (rectangle, circle, line, point or other) using Otsu binarization and contour analysis. Results are sorted by area, largest first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"min_area": map[string]interface{}{
						"type":        "number",
						"description": "Minimum shape area in pixels. Default 0",
					},
					"dark_on_light": map[string]interface{}{
						"type":        "boolean",
						"description": "Shapes are darker than the background. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},

		// OCR
		{
			Name:        "image_ocr",
			Description: "Extract text with Tesseract OCR. Returns the full text plus word and block bounding boxes in image coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code (e.g. eng, deu+eng). Default from CVHELPER_MCP_OCR_LANG, else eng",
					},
					"preprocess": map[string]interface{}{
						"type":        "boolean",
						"description": "Convert to gray and binarize with Otsu before OCR. Default false",
						"default":     false,
					},
					"median_size": map[string]interface{}{
						"type":        "integer",
						"description": "Odd median filter size applied before binarization when preprocess is set. 0 disables it",
					},
					"region":    regionProperty,
					"whitelist": map[string]interface{}{"type": "string", "description": "Only recognize these characters"},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Drop blocks below this confidence (0.0 to 1.0)",
					},
				},
				"required": []string{"path"},
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
