package diagram

import (
	"strings"
	"testing"

	"github.com/matzehuels/cfgview/pkg/cfg"
)

func sized(id string, w, h float64) cfg.Node {
	n := cfg.Node{ID: id}
	n.SetSize(w, h)
	return n
}

func TestBoundsAndFit(t *testing.T) {
	d := Diagram{
		Width: 10, Height: 10,
		Blocks: []Block{
			{Node: sized("0", 40, 20), X: 5, Y: 0, Edges: []Edge{
				{Path: []Point{{X: 25, Y: 20}, {X: 25, Y: 60}, {X: 70.2, Y: 80}}},
			}},
			{Node: sized("1", 30, 10), X: 0, Y: 80},
		},
	}

	w, h := d.Bounds()
	if w != 70.2 || h != 90 {
		t.Errorf("Bounds() = (%v, %v), want (70.2, 90)", w, h)
	}

	d.Fit()
	if d.Width != 71 || d.Height != 90 {
		t.Errorf("after Fit() size = %vx%v, want 71x90", d.Width, d.Height)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() after Fit: %v", err)
	}
}

func TestFitNeverShrinks(t *testing.T) {
	d := Diagram{Width: 500, Height: 400, Blocks: []Block{{Node: sized("0", 10, 10)}}}
	d.Fit()
	if d.Width != 500 || d.Height != 400 {
		t.Errorf("Fit() shrank diagram to %vx%v", d.Width, d.Height)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		d       Diagram
		wantErr string
	}{
		{
			name: "valid",
			d:    Diagram{Width: 20, Height: 20, Blocks: []Block{{Node: sized("0", 20, 20)}}},
		},
		{
			name:    "unsized block",
			d:       Diagram{Width: 20, Height: 20, Blocks: []Block{{Node: cfg.Node{ID: "0"}}}},
			wantErr: "no size",
		},
		{
			name:    "duplicate",
			d:       Diagram{Width: 20, Height: 20, Blocks: []Block{{Node: sized("0", 1, 1)}, {Node: sized("0", 1, 1)}}},
			wantErr: "duplicate",
		},
		{
			name: "short path",
			d: Diagram{Width: 20, Height: 20, Blocks: []Block{{Node: sized("0", 1, 1), Edges: []Edge{
				{Path: []Point{{X: 1, Y: 1}}},
			}}}},
			wantErr: "at least 2",
		},
		{
			name:    "overflow",
			d:       Diagram{Width: 10, Height: 10, Blocks: []Block{{Node: sized("0", 20, 5)}}},
			wantErr: "exceeds",
		},
		{
			name:    "negative coordinates",
			d:       Diagram{Width: 10, Height: 10, Blocks: []Block{{Node: sized("0", 1, 1), X: -1}}},
			wantErr: "negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEdgeEnd(t *testing.T) {
	e := Edge{Path: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 40}}}
	end, prev := e.End()
	if end != (Point{X: 10, Y: 40}) || prev != (Point{X: 10, Y: 0}) {
		t.Errorf("End() = %v, %v", end, prev)
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	d := Diagram{Width: 50, Height: 60, Blocks: []Block{
		{Node: sized("0", 50, 20), Edges: []Edge{{From: "0", To: "1", Path: []Point{{X: 10, Y: 20}, {X: 10, Y: 40}}}}},
		{Node: sized("1", 50, 20), Y: 40},
	}}

	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"data"`) {
		t.Errorf("Marshal() should nest the node under data: %s", data)
	}

	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if back.EdgeCount() != 1 || len(back.Blocks) != 2 {
		t.Errorf("Unmarshal() = %+v", back)
	}
	b, ok := back.Block("1")
	if !ok || b.Y != 40 {
		t.Errorf("Block(1) = %+v, %v", b, ok)
	}
	if w, h := b.Size(); w != 50 || h != 20 {
		t.Errorf("Block(1).Size() = (%v, %v)", w, h)
	}
}
