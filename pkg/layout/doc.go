// Package layout positions measured blocks and routes the edges between
// them.
//
// # Overview
//
// Layout is delegated to an external engine behind the [Engine] interface.
// The engine receives a function whose nodes all carry a measured size and
// returns a [diagram.Diagram]: overall width and height, the top-left corner
// of every block, and for every block the polylines of the edges leaving it.
//
// # Graphviz
//
// [Graphviz] is the default engine. It builds DOT source with one fixed-size
// box per node (see [DOT]), runs the dot layout through go-graphviz and reads
// the result back from Graphviz's "plain" output format. Plain coordinates are
// inches with a bottom-left origin; they are converted to pixels with a
// top-left origin, and each edge's cubic B-spline is flattened into a
// polyline whose first point is the origin and last point the terminus.
//
// # Errors
//
// An unsized node yields [ErrUnsized]. Any failure of the engine itself is
// returned wrapped with [errors.ErrCodeLayout]; nothing is retried and no
// partial diagram is returned.
package layout
