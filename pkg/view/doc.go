// Package view implements the CFG pane: it listens for compile results of
// one compiler and draws the control-flow graph of a function.
//
// # Lifecycle
//
// [New] subscribes to [hub.TopicCompileResult] and [hub.TopicCompiler], then
// announces the pane with [hub.TopicCFGViewOpened] and asks for the current
// filters and compiler with [hub.TopicRequestFilters] and
// [hub.TopicRequestCompiler]. [View.Close] unsubscribes from everything and
// emits [hub.TopicCFGViewClosed].
//
// # Rendering
//
// A compile result is handled synchronously, in four steps:
//
//  1. select the function (the first one unless a name was chosen)
//  2. materialize and measure its blocks in the view's container
//  3. lay the measured function out with the [layout.Engine]
//  4. render the diagram onto the container and the drawing surface
//
// Results for other compilers, and results without a CFG, are ignored
// without touching the container or the surface. A layout failure is
// returned to the caller; the surface keeps the previous drawing because it
// is only cleared by a successful render.
package view
