package cfg

// Node is a basic block of a function's control-flow graph.
//
// Width and Height are nil until the block has been materialized and
// measured. They are pointers so that "unset" is distinguishable from a
// measured size of zero.
type Node struct {
	ID     string   `json:"id" bson:"id"`
	Label  string   `json:"label" bson:"label"`
	Width  *float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height *float64 `json:"height,omitempty" bson:"height,omitempty"`
}

// Sized reports whether both dimensions have been recorded.
func (n *Node) Sized() bool { return n.Width != nil && n.Height != nil }

// SetSize records the measured outer size of the node's block.
func (n *Node) SetSize(w, h float64) {
	n.Width = &w
	n.Height = &h
}

// Size returns the recorded size, or zeros when unset.
func (n *Node) Size() (w, h float64) {
	if n.Width != nil {
		w = *n.Width
	}
	if n.Height != nil {
		h = *n.Height
	}
	return w, h
}

// Edge is a possible control transfer between two basic blocks.
type Edge struct {
	From   string `json:"from" bson:"from"`
	To     string `json:"to" bson:"to"`
	Arrows string `json:"arrows,omitempty" bson:"arrows,omitempty"`
	Color  string `json:"color,omitempty" bson:"color,omitempty"`
}

// Function is the control-flow graph of a single function.
type Function struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges,omitempty" bson:"edges,omitempty"`
}

// Node returns the node with the given id.
func (f *Function) Node(id string) (*Node, bool) {
	for i := range f.Nodes {
		if f.Nodes[i].ID == id {
			return &f.Nodes[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy, including measured sizes.
func (f *Function) Clone() *Function {
	out := &Function{
		Nodes: make([]Node, len(f.Nodes)),
		Edges: append([]Edge(nil), f.Edges...),
	}
	for i, n := range f.Nodes {
		out.Nodes[i] = Node{ID: n.ID, Label: n.Label}
		if n.Width != nil {
			w := *n.Width
			out.Nodes[i].Width = &w
		}
		if n.Height != nil {
			h := *n.Height
			out.Nodes[i].Height = &h
		}
	}
	return out
}

// CompileResult is the subset of a compilation result this package reads.
// CFG is nil when the result has no cfg field.
type CompileResult struct {
	CFG *Result `json:"cfg,omitempty"`
}
