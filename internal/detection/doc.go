// Package detection turns contours into shape descriptions.
//
// Contours come from cvhelper.FindContours. For each one the package
// measures area, perimeter, centroid and bounding box and derives two
// scores used for classification:
//
//   - Rectangularity: area relative to the bounding box (1.0 for an
//     axis-aligned rectangle)
//   - Circularity: 4*pi*area/perimeter^2 (highest for disks)
//
// # Coordinate System
//
// All coordinates use the standard image convention with the origin at the
// top-left corner. Bounding boxes use an inclusive top-left and an exclusive
// bottom-right corner.
//
// # Limitations
//
// Only outer borders are traced, so holes do not reduce the reported area
// and shapes nested inside holes are not reported. Rotated rectangles score
// a low rectangularity and are reported as "other".
package detection
