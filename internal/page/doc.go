// Package page lays out one page per source image.
//
// For every image, in caller order, the Composer awaits the image's pixel
// dimensions, plans its rotation, converts the rotated bounding box to
// millimetres, fits it into the drawable area (page minus margins) and
// positions the header, footer and caption decorations. Page numbers of the
// form "Page N of M" depend on the final page count and are added in a second
// pass by Finalize, which returns new Spec values rather than patching the
// first-pass pages.
//
// A Spec is built atomically: either the whole page is returned or an error
// is. Compose returns the pages completed before a failure so callers can
// inspect or keep a partial document.
//
// The image sequence itself is owned by the caller; Move and Remove are pure
// splices that return a new slice.
package page
