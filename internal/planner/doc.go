// Package planner computes the geometry of raster operations without touching
// pixels.
//
// Each planner is a pure function of its inputs and returns an immutable plan
// value that the rasterizer or page composer consumes exactly once:
//
//   - PlanCrop: center-crop to a target aspect ratio with an optional upscale
//     guard, producing a CropPlan.
//   - PlanRotation: axis-aligned bounding box and center-pivot transform of a
//     rotated image, producing a RotationPlan.
//   - PlanFit: Contain, Cover or Stretch placement of content inside a
//     drawable area, producing a FitResult.
//
// Planners never clip, round to whole pixels or log.
package planner
