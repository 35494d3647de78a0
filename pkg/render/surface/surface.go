// Package surface defines the drawing target edges are painted on.
//
// A [Surface] is an independent layer placed over the block container. It
// knows nothing about blocks: the renderer resizes it, clears it and draws
// stroked polylines and filled polygons in diagram coordinates.
//
// Two implementations are provided. [Recorder] keeps the drawing operations
// as data, which the SVG sink serializes and tests inspect. [Raster] paints
// into a gogpu/gg software canvas that can be encoded as PNG.
package surface

import "github.com/matzehuels/cfgview/pkg/diagram"

// Surface is a resizable 2D drawing layer.
type Surface interface {
	// Resize sets the drawing size in diagram pixels.
	Resize(w, h float64) error
	// Size returns the current drawing size.
	Size() (w, h float64)
	// Clear erases everything drawn so far.
	Clear()
	// StrokePolyline draws connected segments through pts.
	StrokePolyline(pts []diagram.Point, width float64, color string) error
	// FillPolygon fills the closed polygon through pts.
	FillPolygon(pts []diagram.Point, color string) error
}
