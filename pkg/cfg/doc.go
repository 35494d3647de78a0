// Package cfg defines the control-flow graph payload produced by a compiler
// and selects the single function a diagram is drawn for.
//
// # Data Model
//
// A compile result carries a [Result]: an ordered mapping from function name
// to [Function]. Key order is the order the keys appear in the JSON document,
// which Go maps cannot preserve, so [Result] keeps its own ordering.
//
// Each [Function] holds its basic blocks as [Node] values and the control
// transfers between them as [Edge] values. Node width and height stay unset
// until the block materializer measures them.
//
// # Boundary Validation
//
// [Parse] and [ReadResult] are the only way data enters the package from the
// outside. They reject structurally broken input (empty or duplicate node IDs)
// and explicitly drop edges that name unknown nodes, recording what was
// dropped in [Result.Dropped]. Labels are never inspected.
//
// # Selection
//
// [Normalize] picks the function whose key came first. [Select] does the same
// when no name is given, or looks a function up by name. A nil result means
// the compile result had no cfg field; both return ok == false and the caller
// skips rendering without reporting an error.
package cfg
