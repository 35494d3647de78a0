// Package sink writes rendered control-flow graphs to output formats.
//
// # Formats
//
//   - SVG ([RenderSVG]): blocks as labelled rectangles, edges and arrowheads
//     replayed from a [surface.Recorder]
//   - PNG ([RenderPNG]): rasterized with gogpu/gg, labels drawn with the
//     same embedded font the blocks were measured with
//   - PDF ([RenderPDF]): SVG converted with rsvg-convert
//   - JSON ([RenderJSON]): the diagram itself, for caching and for other
//     tools
//
// Every sink draws in the diagram's own coordinate space, so block
// rectangles and edge paths line up exactly as the layout engine placed them.
//
// # Options
//
// Sinks are configured with functional options. Colors and font size are
// shared through [Style]:
//
//	svg := sink.RenderSVG(container, recorder, sink.WithStyle(sink.LightStyle))
//	png, err := sink.RenderPNG(d, container, renderer, sink.WithScale(2))
package sink
