// Package pipeline wires the planners, the raster codec and the PDF writer
// into the two user-facing workflows: crop & resize a single image, and
// combine an ordered image sequence into a paginated PDF.
//
// Both workflows validate their options before any image is decoded. Combine
// lays out pages strictly in input order and renders one page at a time; when
// a page fails, the pages composed before it are returned in a PartialError.
package pipeline
