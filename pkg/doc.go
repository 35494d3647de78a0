// Package pkg provides the libraries behind cfgview, a renderer for the
// control-flow graphs compilers attach to their compile results.
//
// # Overview
//
// A compile result may carry a "cfg" field mapping function names to a graph
// of nodes (basic blocks with a text label) and edges. cfgview draws one of
// those functions as labelled blocks connected by arrows.
//
// # Architecture
//
// The typical data flow:
//
//	compile result JSON
//	         ↓
//	    [cfg] package (decode, validate, pick a function)
//	         ↓
//	    [render/block] package (one measured block per node)
//	         ↓
//	    [layout] package (block positions and edge paths)
//	         ↓
//	    [render] package (move blocks, draw edges and arrowheads)
//	         ↓
//	    [render/sink] package (SVG, PNG, PDF, JSON)
//
// # Main Packages
//
// ## Domain
//
// [cfg] - Compile result decoding. Function order follows the JSON key order
// of the cfg object, and edges naming unknown nodes are dropped.
//
// [diagram] - The layout engine's output: per block a position and the
// outgoing edge paths, plus the overall size.
//
// [layout] - The [layout.Engine] interface and its Graphviz implementation.
//
// [render] - Places blocks and draws edges onto a [render/surface].
//
// ## Live Pane
//
// [hub] - Topic based event hub delivering compiler and compile result
// notifications.
//
// [view] - A CFG pane bound to one compiler: it subscribes to the hub and
// redraws whenever that compiler produces a result.
//
// ## Batch Rendering
//
// [pipeline] - Parse → materialize → layout → render, shared by the CLI and
// the HTTP server.
//
// [cache] - Layout and artifact cache with file, Redis and MongoDB backends.
//
// [server] - HTTP API over the pipeline.
//
// # Testing
//
//	go test ./pkg/...
//
// [cfg]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/cfg
// [diagram]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/diagram
// [layout]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/layout
// [layout.Engine]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/layout#Engine
// [render]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/render
// [render/block]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/render/block
// [render/surface]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/render/surface
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/render/sink
// [hub]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/hub
// [view]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/view
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/server
package pkg
