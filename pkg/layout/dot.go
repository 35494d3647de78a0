package layout

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/cfgview/pkg/cfg"
)

// pointsPerInch converts between Graphviz inches and pixels. Pixels and
// points coincide at the 72 dpi Graphviz assumes.
const pointsPerInch = 72.0

// DOTOptions controls graph-level attributes of the generated DOT source.
type DOTOptions struct {
	RankSep float64 // inches between ranks
	NodeSep float64 // inches between nodes in a rank
	Splines string  // Graphviz splines attribute
	Labels  bool    // emit node labels; layout itself never needs them
}

// DefaultDOTOptions are the attributes the Graphviz engine lays out with.
var DefaultDOTOptions = DOTOptions{RankSep: 0.5, NodeSep: 0.4, Splines: "spline"}

// DOT converts a measured function to Graphviz DOT source. Nodes are named
// b0, b1, ... in node order so arbitrary ids never need escaping; the id is
// kept in the node's id attribute. Every node must be sized.
func DOT(fn *cfg.Function, opts DOTOptions) (string, error) {
	if err := CheckSized(fn); err != nil {
		return "", err
	}
	names := nodeNames(fn)

	var buf bytes.Buffer
	buf.WriteString("digraph cfg {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  pad=0;\n")
	if opts.Splines != "" {
		fmt.Fprintf(&buf, "  splines=%q;\n", opts.Splines)
	}
	if opts.RankSep > 0 {
		fmt.Fprintf(&buf, "  ranksep=%s;\n", ftoa(opts.RankSep))
	}
	if opts.NodeSep > 0 {
		fmt.Fprintf(&buf, "  nodesep=%s;\n", ftoa(opts.NodeSep))
	}
	buf.WriteString("  node [shape=box, fixedsize=true, margin=0];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for i, n := range fn.Nodes {
		w, h := n.Size()
		label := ""
		if opts.Labels {
			label = n.Label
		}
		fmt.Fprintf(&buf, "  %s [id=%q, label=%q, width=%s, height=%s];\n",
			names[i], n.ID, label, ftoa(w/pointsPerInch), ftoa(h/pointsPerInch))
	}

	index := nameIndex(fn, names)
	buf.WriteString("\n")
	for _, e := range fn.Edges {
		from, okFrom := index[e.From]
		to, okTo := index[e.To]
		if !okFrom || !okTo {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", from, to)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeNames(fn *cfg.Function) []string {
	names := make([]string, len(fn.Nodes))
	for i := range fn.Nodes {
		names[i] = "b" + strconv.Itoa(i)
	}
	return names
}

// nameIndex maps node ids to DOT names. The first node wins on duplicate ids.
func nameIndex(fn *cfg.Function, names []string) map[string]string {
	idx := make(map[string]string, len(names))
	for i, n := range fn.Nodes {
		if _, ok := idx[n.ID]; !ok {
			idx[n.ID] = names[i]
		}
	}
	return idx
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
