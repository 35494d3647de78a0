package render

import (
	"fmt"
	"testing"

	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/diagram"
	"github.com/matzehuels/cfgview/pkg/errors"
	"github.com/matzehuels/cfgview/pkg/render/block"
	"github.com/matzehuels/cfgview/pkg/render/surface"
)

func node(id string, w, h float64) cfg.Node {
	n := cfg.Node{ID: id, Label: id}
	n.SetSize(w, h)
	return n
}

func containerFor(ids ...string) *block.Container {
	c := block.NewContainer()
	for _, id := range ids {
		c.Append(block.NewElement(id, id))
	}
	c.Commit()
	return c
}

func verticalDiagram() diagram.Diagram {
	return diagram.Diagram{
		Width:  30,
		Height: 60,
		Blocks: []diagram.Block{
			{Node: node("0", 20, 10), X: 0, Y: 0, Edges: []diagram.Edge{
				{From: "0", To: "1", Path: []diagram.Point{{X: 10, Y: 0}, {X: 10, Y: 40}}},
			}},
			{Node: node("1", 20, 10), X: 0, Y: 40},
		},
	}
}

func TestRenderVerticalEdge(t *testing.T) {
	c := containerFor("0", "1")
	rec := surface.NewRecorder()
	if err := NewRenderer().Render(verticalDiagram(), c, rec); err != nil {
		t.Fatalf("Render: %v", err)
	}

	ops := rec.Ops()
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want stroke + fill", len(ops))
	}
	stroke, fill := ops[0], ops[1]
	if stroke.Kind != surface.OpStroke || stroke.Width != 2 || stroke.Color != "#ffffff" {
		t.Errorf("stroke = %+v", stroke)
	}
	wantLine := []diagram.Point{{X: 10, Y: 0}, {X: 10, Y: 40}}
	if fmt.Sprint(stroke.Points) != fmt.Sprint(wantLine) {
		t.Errorf("stroke points = %v, want %v", stroke.Points, wantLine)
	}
	wantTri := []diagram.Point{{X: 7.5, Y: 35}, {X: 12.5, Y: 35}, {X: 10, Y: 40}}
	if fill.Kind != surface.OpFill || fmt.Sprint(fill.Points) != fmt.Sprint(wantTri) {
		t.Errorf("fill = %+v, want triangle %v", fill, wantTri)
	}
}

func TestRenderDimensions(t *testing.T) {
	c := containerFor("0", "1")
	rec := surface.NewRecorder()
	d := verticalDiagram()
	if err := NewRenderer().Render(d, c, rec); err != nil {
		t.Fatal(err)
	}
	if w, h := c.Size(); w != d.Width || h != d.Height {
		t.Errorf("container = %vx%v, want %vx%v", w, h, d.Width, d.Height)
	}
	if w, h := rec.Size(); w != d.Width || h != d.Height {
		t.Errorf("surface = %vx%v, want %vx%v", w, h, d.Width, d.Height)
	}
}

func TestRenderPositionsElements(t *testing.T) {
	c := containerFor("0", "1")
	if err := NewRenderer().Render(verticalDiagram(), c, surface.NewRecorder()); err != nil {
		t.Fatal(err)
	}
	e, _ := c.Element("1")
	if e.X != 0 || e.Y != 40 {
		t.Errorf("element 1 at (%v, %v), want (0, 40)", e.X, e.Y)
	}
}

func TestRenderSegments(t *testing.T) {
	path := []diagram.Point{{X: 0, Y: 0}, {X: 5, Y: 10}, {X: 5, Y: 20}, {X: 8, Y: 30}}
	d := diagram.Diagram{Width: 20, Height: 40, Blocks: []diagram.Block{
		{Node: node("a", 10, 10), Edges: []diagram.Edge{{Path: path}}},
	}}
	rec := surface.NewRecorder()
	if err := NewRenderer().Render(d, containerFor("a"), rec); err != nil {
		t.Fatal(err)
	}
	ops := rec.Ops()
	if got := len(ops[0].Points) - 1; got != 3 {
		t.Errorf("stroked %d segments, want 3", got)
	}
	if ops[1].Points[2] != path[3] {
		t.Errorf("arrow apex = %v, want %v", ops[1].Points[2], path[3])
	}
}

func TestRenderIdempotent(t *testing.T) {
	c := containerFor("0", "1")
	rec := surface.NewRecorder()
	r := NewRenderer()
	for range 3 {
		if err := r.Render(verticalDiagram(), c, rec); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(rec.Ops()); n != 2 {
		t.Errorf("after 3 renders: %d ops, want 2", n)
	}
	if rec.Clears != 3 {
		t.Errorf("Clears = %d, want 3", rec.Clears)
	}
}

func TestRenderMissingElement(t *testing.T) {
	rec := surface.NewRecorder()
	_ = rec.StrokePolyline([]diagram.Point{{}, {X: 1}}, 1, "")
	err := NewRenderer().Render(verticalDiagram(), containerFor("0"), rec)
	if !errors.Is(err, errors.ErrCodeLayout) {
		t.Errorf("err = %v, want LAYOUT_FAILED", err)
	}
	if len(rec.Ops()) != 1 {
		t.Error("surface was cleared before the failure was detected")
	}
}

func TestRenderShortPath(t *testing.T) {
	d := diagram.Diagram{Width: 10, Height: 10, Blocks: []diagram.Block{
		{Node: node("a", 5, 5), Edges: []diagram.Edge{{Path: []diagram.Point{{X: 1, Y: 1}}}}},
	}}
	err := NewRenderer().Render(d, containerFor("a"), surface.NewRecorder())
	if !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("err = %v, want RENDER_FAILED", err)
	}
}

func TestRenderEdgeColors(t *testing.T) {
	d := verticalDiagram()
	d.Blocks[0].Edges[0].Color = "red"

	rec := surface.NewRecorder()
	if err := NewRenderer().Render(d, containerFor("0", "1"), rec); err != nil {
		t.Fatal(err)
	}
	if got := rec.Ops()[0].Color; got != DefaultStrokeColor {
		t.Errorf("default color = %q, want %q", got, DefaultStrokeColor)
	}

	r := NewRenderer()
	r.EdgeColors = true
	if err := r.Render(d, containerFor("0", "1"), rec); err != nil {
		t.Fatal(err)
	}
	for _, op := range rec.Ops() {
		if op.Color != "red" {
			t.Errorf("%s color = %q, want red", op.Kind, op.Color)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	rec := surface.NewRecorder()
	c := block.NewContainer()
	if err := NewRenderer().Render(diagram.Diagram{}, c, rec); err != nil {
		t.Fatal(err)
	}
	if w, h := rec.Size(); w != 0 || h != 0 {
		t.Errorf("surface = %vx%v, want 0x0", w, h)
	}
}

func TestRenderRaster(t *testing.T) {
	r := surface.NewRaster(1)
	defer r.Close()
	if err := NewRenderer().Render(verticalDiagram(), containerFor("0", "1"), r); err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := r.Image().At(10, 20).RGBA(); a == 0 {
		t.Error("edge not painted at (10, 20)")
	}
}

func TestArrowhead(t *testing.T) {
	end := diagram.Point{X: 10, Y: 40}
	tests := []struct {
		name  string
		prev  diagram.Point
		style ArrowStyle
		want  [3]diagram.Point
	}{
		{"down ignores direction", diagram.Point{X: 0, Y: 40}, ArrowDown,
			[3]diagram.Point{{X: 7.5, Y: 35}, {X: 12.5, Y: 35}, end}},
		{"path downward matches down", diagram.Point{X: 10, Y: 0}, ArrowAlongPath,
			[3]diagram.Point{{X: 7.5, Y: 35}, {X: 12.5, Y: 35}, end}},
		{"path rightward", diagram.Point{X: 0, Y: 40}, ArrowAlongPath,
			[3]diagram.Point{{X: 5, Y: 42.5}, {X: 5, Y: 37.5}, end}},
		{"path upward", diagram.Point{X: 10, Y: 80}, ArrowAlongPath,
			[3]diagram.Point{{X: 12.5, Y: 45}, {X: 7.5, Y: 45}, end}},
		{"path zero-length falls back", end, ArrowAlongPath,
			[3]diagram.Point{{X: 7.5, Y: 35}, {X: 12.5, Y: 35}, end}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Arrowhead(end, tt.prev, 5, 5, tt.style)
			if got != tt.want {
				t.Errorf("Arrowhead = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseArrowStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    ArrowStyle
		wantErr bool
	}{
		{"", ArrowDown, false},
		{"down", ArrowDown, false},
		{"PATH", ArrowAlongPath, false},
		{"along-path", ArrowAlongPath, false},
		{"sideways", ArrowDown, true},
	}
	for _, tt := range tests {
		got, err := ParseArrowStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseArrowStyle(%q) err = %v", tt.in, err)
			continue
		}
		if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidArrow) {
			t.Errorf("ParseArrowStyle(%q) err code = %s", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseArrowStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, s := range ArrowStyles {
		style, _ := ParseArrowStyle(s)
		if style.String() != s {
			t.Errorf("round trip %q -> %q", s, style.String())
		}
	}
}

func ExampleArrowhead() {
	tri := Arrowhead(diagram.Point{X: 10, Y: 40}, diagram.Point{X: 10, Y: 0}, 5, 5, ArrowDown)
	fmt.Println(tri)
	// Output: [{7.5 35} {12.5 35} {10 40}]
}
