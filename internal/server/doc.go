// Package server implements the MCP (Model Context Protocol) server that
// exposes the cvhelper operations as tools.
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
// Notifications (methods under notifications/) get no response.
//
// # Available Tools
//
// Image information:
//   - image_load, image_dimensions, image_cache_clear
//
// Image operations, each returning a PNG as base64 and optionally writing
// it to output_path:
//   - image_crop
//   - cv_dilate, cv_erode, cv_morph_open, cv_morph_close
//   - cv_normalize, cv_resize, cv_convert_color
//   - cv_blur_gaussian, cv_blur_median
//   - cv_threshold, cv_canny, cv_rotate
//   - cv_pipeline: several of the above in sequence
//
// Analysis:
//   - cv_find_contours, cv_detect_shapes
//   - image_ocr
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process. Writing
// a result over a cached path drops the stale entry.
//
// # Error Handling
//
//   - -32601: unknown method
//   - -32602: malformed params, unknown tool or invalid tool arguments
//   - -32000: any other tool failure
//
// The error data carries the Go error string.
//
// # Configuration
//
// ConfigFromEnv reads CVHELPER_MCP_LOG_LEVEL (debug enables request
// logging), CVHELPER_MCP_OCR_LANG (default OCR language) and
// CVHELPER_MCP_MAX_LINE_BYTES (largest accepted request line).
package server
