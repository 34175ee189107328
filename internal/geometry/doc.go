// Package geometry provides the dimension, rectangle and unit-conversion
// primitives shared by the crop, rotation, fit and page planners.
//
// # Coordinate System
//
// All coordinates use a top-left origin with X increasing rightward and Y
// increasing downward, in both source-pixel space and page-physical space.
//
// # Units
//
// Values are tagged with a Unit. Pixel values are converted to millimetres at
// a fixed reference density of 96 pixels per inch (25.4 mm per inch), the
// density browsers and most raster tools assume when no DPI is recorded.
//
// # Error Handling
//
// Operations that divide by a width or height return ErrDegenerateDimension
// when that side is zero or negative. Everything else is a total function.
package geometry
