// Package render draws a laid-out control-flow graph.
//
// # Overview
//
// The [Renderer] takes a [diagram.Diagram] from the layout engine and makes
// it visible in two places that share one coordinate space:
//
//   - the block container, whose elements are moved to the positions the
//     engine chose and which is resized to the diagram's size
//   - the drawing [surface.Surface] layered over it, which is resized,
//     cleared and then receives one stroked polyline plus one filled
//     arrowhead per edge
//
// Rendering the same diagram twice yields the same picture: the surface is
// always cleared before drawing.
//
// # Arrowheads
//
// Each edge ends in a triangle whose tip is the edge's terminus. With
// [ArrowDown] (the default) the triangle always points straight down, which
// matches a top-to-bottom layout. [ArrowAlongPath] orients it along the last
// path segment instead, so edges that enter a block sideways or from below
// still point at it.
//
// # Format Conversion
//
// [ToPDF] converts SVG output to PDF using the external rsvg-convert tool
// (from librsvg). The [sink] subpackage builds on it; PNG output is
// rasterized in-process instead.
//
// [sink]: github.com/matzehuels/cfgview/pkg/render/sink
package render
