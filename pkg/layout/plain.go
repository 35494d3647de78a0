package layout

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/diagram"
)

// bezierSteps is the number of segments each cubic piece of a spline is
// flattened into.
const bezierSteps = 8

// plainGraph is the parsed content of Graphviz "plain" output. All values
// are still in inches with a bottom-left origin.
type plainGraph struct {
	width, height float64
	nodes         map[string]plainNode
	edges         []plainEdge
}

type plainNode struct {
	x, y float64
}

type plainEdge struct {
	tail, head string
	points     []diagram.Point
}

// parsePlain reads the "graph", "node" and "edge" statements of Graphviz
// plain output.
func parsePlain(data []byte) (plainGraph, error) {
	pg := plainGraph{nodes: make(map[string]plainNode)}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var sawGraph bool
	for line := 1; sc.Scan(); line++ {
		fields := splitFields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		var err error
		switch fields[0] {
		case "graph":
			err = pg.parseGraph(fields)
			sawGraph = err == nil
		case "node":
			err = pg.parseNode(fields)
		case "edge":
			err = pg.parseEdge(fields)
		case "stop":
			return pg, pg.check(sawGraph)
		}
		if err != nil {
			return plainGraph{}, fmt.Errorf("plain output line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return plainGraph{}, fmt.Errorf("read plain output: %w", err)
	}
	return pg, pg.check(sawGraph)
}

func (pg *plainGraph) check(sawGraph bool) error {
	if !sawGraph {
		return fmt.Errorf("plain output has no graph statement")
	}
	return nil
}

// graph scale width height
func (pg *plainGraph) parseGraph(f []string) error {
	nums, err := floats(f, 1, 3)
	if err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	pg.width, pg.height = nums[1], nums[2]
	return nil
}

// node name x y width height label style shape color fillcolor
func (pg *plainGraph) parseNode(f []string) error {
	if len(f) < 4 {
		return fmt.Errorf("node: want at least 4 fields, got %d", len(f))
	}
	nums, err := floats(f, 2, 2)
	if err != nil {
		return fmt.Errorf("node %s: %w", f[1], err)
	}
	pg.nodes[f[1]] = plainNode{x: nums[0], y: nums[1]}
	return nil
}

// edge tail head n x1 y1 .. xn yn [label xl yl] style color
func (pg *plainGraph) parseEdge(f []string) error {
	if len(f) < 4 {
		return fmt.Errorf("edge: want at least 4 fields, got %d", len(f))
	}
	n, err := strconv.Atoi(f[3])
	if err != nil || n < 1 {
		return fmt.Errorf("edge %s->%s: bad point count %q", f[1], f[2], f[3])
	}
	nums, err := floats(f, 4, 2*n)
	if err != nil {
		return fmt.Errorf("edge %s->%s: %w", f[1], f[2], err)
	}
	pts := make([]diagram.Point, n)
	for i := range pts {
		pts[i] = diagram.Point{X: nums[2*i], Y: nums[2*i+1]}
	}
	pg.edges = append(pg.edges, plainEdge{tail: f[1], head: f[2], points: pts})
	return nil
}

func floats(f []string, from, n int) ([]float64, error) {
	if len(f) < from+n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, max(0, len(f)-from))
	}
	out := make([]float64, n)
	for i := range out {
		v, err := strconv.ParseFloat(f[from+i], 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f[from+i])
		}
		out[i] = v
	}
	return out, nil
}

// splitFields splits a plain output line on spaces, keeping double-quoted
// strings (which may contain spaces and escaped quotes) as one field.
func splitFields(line string) []string {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
		inTok  bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted && c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case c == '"':
			quoted = !quoted
			inTok = true
		case !quoted && (c == ' ' || c == '\t'):
			if inTok {
				fields = append(fields, cur.String())
				cur.Reset()
				inTok = false
			}
		default:
			cur.WriteByte(c)
			inTok = true
		}
	}
	if inTok {
		fields = append(fields, cur.String())
	}
	return fields
}

// toDiagram converts parsed plain output into pixel space for fn, whose nodes
// were emitted under names by [DOT].
func (pg plainGraph) toDiagram(fn *cfg.Function, names []string) (diagram.Diagram, error) {
	height := snap(pg.height * pointsPerInch)
	d := diagram.Diagram{
		Width:  math.Ceil(snap(pg.width * pointsPerInch)),
		Height: math.Ceil(height),
		Blocks: make([]diagram.Block, 0, len(fn.Nodes)),
	}

	blockOf := make(map[string]int, len(fn.Nodes))
	for i, n := range fn.Nodes {
		pn, ok := pg.nodes[names[i]]
		if !ok {
			return diagram.Diagram{}, fmt.Errorf("engine returned no position for node %q", n.ID)
		}
		w, h := n.Size()
		d.Blocks = append(d.Blocks, diagram.Block{
			Node: n,
			X:    math.Max(0, snap(pn.x*pointsPerInch-w/2)),
			Y:    math.Max(0, snap(height-pn.y*pointsPerInch-h/2)),
		})
		if _, ok := blockOf[n.ID]; !ok {
			blockOf[n.ID] = i
		}
	}

	routes := make(map[[2]string][]plainEdge)
	for _, e := range pg.edges {
		k := [2]string{e.tail, e.head}
		routes[k] = append(routes[k], e)
	}

	for _, e := range fn.Edges {
		from, okFrom := blockOf[e.From]
		to, okTo := blockOf[e.To]
		if !okFrom || !okTo {
			continue
		}
		k := [2]string{names[from], names[to]}
		queue := routes[k]
		if len(queue) == 0 {
			return diagram.Diagram{}, fmt.Errorf("engine returned no route for edge %q -> %q", e.From, e.To)
		}
		routes[k] = queue[1:]

		b := &d.Blocks[from]
		b.Edges = append(b.Edges, diagram.Edge{
			From:  e.From,
			To:    e.To,
			Color: e.Color,
			Path:  flatten(queue[0].points, height),
		})
	}

	d.Fit()
	return d, nil
}

// snapTolerance is how far from a whole pixel a converted value may be and
// still count as that pixel. Plain output prints inches with five
// significant digits, so 48px comes back as 48.00024.
const snapTolerance = 0.05

// snap rounds v to the nearest whole pixel when it lies within
// snapTolerance of it.
func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < snapTolerance {
		return r
	}
	return v
}

// flatten converts B-spline control points in plain space into a pixel-space
// polyline. The result always has at least two points; the first is the
// spline origin and the last its terminus.
func flatten(cp []diagram.Point, height float64) []diagram.Point {
	px := make([]diagram.Point, len(cp))
	for i, p := range cp {
		px[i] = diagram.Point{
			X: math.Max(0, snap(p.X*pointsPerInch)),
			Y: math.Max(0, snap(height-p.Y*pointsPerInch)),
		}
	}

	var out []diagram.Point
	if len(px) >= 4 && (len(px)-1)%3 == 0 {
		out = append(out, px[0])
		for k := 0; k+3 < len(px); k += 3 {
			for s := 1; s <= bezierSteps; s++ {
				out = append(out, cubic(px[k], px[k+1], px[k+2], px[k+3], float64(s)/bezierSteps))
			}
		}
	} else {
		out = px
	}

	out = dedupe(out)
	if len(out) == 1 {
		out = append(out, out[0])
	}
	return out
}

func cubic(p0, p1, p2, p3 diagram.Point, t float64) diagram.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return diagram.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

func dedupe(pts []diagram.Point) []diagram.Point {
	if len(pts) == 0 {
		return pts
	}
	out := []diagram.Point{pts[0]}
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
