// Package block materializes basic blocks as visual elements and measures
// their rendered footprint.
//
// # Two-Phase Measurement
//
// A block's size is only meaningful once it sits in the committed container.
// [Materialize] therefore works in two passes over the same [Container]:
//
//  1. Clear the container and append one [Element] per node, in node order.
//  2. [Container.Commit] (the forced layout pass), then ask the [Measurer]
//     for each element's outer size and record it on the node.
//
// A [Measurer] that is handed an element the container has not committed
// returns [ErrNotCommitted]; a read can never happen before the insertion it
// depends on.
//
// # Measurers
//
// [FontMeasurer] sizes labels with real glyph metrics from the embedded Go
// Mono face. [MeasureFunc] adapts a plain function, which is how tests get
// deterministic sizes without fonts.
package block
