// Package imaging is the raster side of the layout pipeline: it decodes
// source files, executes crop and rotation plans on pixels and encodes the
// results.
//
// The planners in package planner only describe geometry. This package turns
// a CropPlan or RotationPlan into pixels using the disintegration/imaging and
// bild libraries, and is the only place that rounds plan coordinates to whole
// pixels.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Plan rectangles are rounded
// to the nearest pixel edge and clamped to the image bounds.
//
// # Formats
//
// Input formats are detected from file content, not extension:
//   - PNG, JPEG, GIF, BMP, TIFF and WebP are decoded
//   - anything else fails with ErrUnsupportedFormat
//
// JPEG input is rotated according to its EXIF orientation tag on decode.
// Output is PNG or JPEG; any other format fails with ErrEncode.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Render functions are
// stateless and return new images; they never modify their input.
//
// # Memory Management
//
// Decoded images stay in the cache until Evict() or Clear() is called. The
// combine workflow evicts each image once its page has been rendered.
package imaging
