// Package imaging provides the file-facing side of the server: decoding and
// caching input images, cropping regions, and encoding results.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. For regions, (x1,y1) is
// inclusive and (x2,y2) is exclusive.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Cached images are shared between
// callers and must be treated as read-only.
//
// # Formats
//
// Input images may be PNG, JPEG, GIF, BMP, TIFF or WebP. Results are encoded
// as PNG, either inline as base64 (EncodeResult) or on disk (SaveImage, which
// picks the format from the file extension).
package imaging
