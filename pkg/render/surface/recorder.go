package surface

import (
	"fmt"
	"slices"

	"github.com/matzehuels/cfgview/pkg/diagram"
)

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpStroke OpKind = iota
	OpFill
)

func (k OpKind) String() string {
	switch k {
	case OpStroke:
		return "stroke"
	case OpFill:
		return "fill"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one drawing call.
type Op struct {
	Kind   OpKind
	Points []diagram.Point
	Width  float64 // stroke width, zero for fills
	Color  string
}

// Recorder is a [Surface] that records operations instead of painting.
type Recorder struct {
	width, height float64
	ops           []Op

	// Clears counts calls to Clear.
	Clears int
}

// NewRecorder returns an empty 0x0 recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Resize implements [Surface].
func (r *Recorder) Resize(w, h float64) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("invalid surface size %vx%v", w, h)
	}
	r.width, r.height = w, h
	return nil
}

// Size implements [Surface].
func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

// Clear implements [Surface].
func (r *Recorder) Clear() {
	r.ops = nil
	r.Clears++
}

// StrokePolyline implements [Surface].
func (r *Recorder) StrokePolyline(pts []diagram.Point, width float64, color string) error {
	if len(pts) < 2 {
		return fmt.Errorf("polyline needs 2 points, got %d", len(pts))
	}
	r.ops = append(r.ops, Op{Kind: OpStroke, Points: slices.Clone(pts), Width: width, Color: color})
	return nil
}

// FillPolygon implements [Surface].
func (r *Recorder) FillPolygon(pts []diagram.Point, color string) error {
	if len(pts) < 3 {
		return fmt.Errorf("polygon needs 3 points, got %d", len(pts))
	}
	r.ops = append(r.ops, Op{Kind: OpFill, Points: slices.Clone(pts), Color: color})
	return nil
}

// Ops returns the operations since the last Clear, in call order.
func (r *Recorder) Ops() []Op { return slices.Clone(r.ops) }

// Count returns how many operations of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
