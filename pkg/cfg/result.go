package cfg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/cfgview/pkg/errors"
)

// Result maps function names to their control-flow graphs, keeping the
// order in which the names were first seen.
type Result struct {
	names []string
	funcs map[string]*Function

	// Dropped lists edges removed by boundary validation.
	Dropped []DroppedEdge `json:"-"`
}

// DroppedEdge records an edge that was removed because an endpoint does not
// name a node of its function.
type DroppedEdge struct {
	Function string
	Edge     Edge
	Reason   string
}

// NewResult creates an empty result.
func NewResult() *Result {
	return &Result{funcs: make(map[string]*Function)}
}

// Add appends a function. Adding an existing name replaces its graph but
// keeps its original position.
func (r *Result) Add(name string, fn Function) {
	if r.funcs == nil {
		r.funcs = make(map[string]*Function)
	}
	if _, ok := r.funcs[name]; !ok {
		r.names = append(r.names, name)
	}
	f := fn
	r.funcs[name] = &f
}

// Names returns function names in iteration order.
func (r *Result) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of functions.
func (r *Result) Len() int { return len(r.names) }

// Lookup returns the function with the given name.
func (r *Result) Lookup(name string) (*Function, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Clone returns a deep copy of every function, keeping the order.
func (r *Result) Clone() *Result {
	out := &Result{
		names:   append([]string(nil), r.names...),
		funcs:   make(map[string]*Function, len(r.funcs)),
		Dropped: append([]DroppedEdge(nil), r.Dropped...),
	}
	for name, fn := range r.funcs {
		out.funcs[name] = fn.Clone()
	}
	return out
}

// UnmarshalJSON decodes a JSON object while preserving key order.
func (r *Result) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("cfg: expected object, got %v", tok)
	}

	*r = Result{funcs: make(map[string]*Function)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("cfg: expected function name, got %v", tok)
		}
		var fn Function
		if err := dec.Decode(&fn); err != nil {
			return fmt.Errorf("cfg: function %q: %w", name, err)
		}
		r.Add(name, fn)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the result as a JSON object in iteration order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.funcs[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Parse decodes and validates a cfg mapping (the value of a compile
// result's cfg field).
func Parse(data []byte) (*Result, error) {
	res := NewResult()
	if err := json.Unmarshal(data, res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode cfg")
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// ReadResult decodes and validates a full compile result document. The
// returned CompileResult has a nil CFG when the document has no cfg field.
func ReadResult(r io.Reader) (*CompileResult, error) {
	var cr CompileResult
	if err := json.NewDecoder(r).Decode(&cr); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode compile result")
	}
	if cr.CFG != nil {
		if err := cr.CFG.Validate(); err != nil {
			return nil, err
		}
	}
	return &cr, nil
}

// Validate rejects empty or duplicate node IDs and drops edges whose
// endpoints are unknown. It is safe to call more than once.
func (r *Result) Validate() error {
	r.Dropped = nil
	for _, name := range r.names {
		fn := r.funcs[name]
		seen := make(map[string]struct{}, len(fn.Nodes))
		for i, n := range fn.Nodes {
			if n.ID == "" {
				return errors.New(errors.ErrCodeInvalidInput, "function %q: node %d has an empty id", name, i)
			}
			if _, dup := seen[n.ID]; dup {
				return errors.New(errors.ErrCodeInvalidInput, "function %q: duplicate node id %q", name, n.ID)
			}
			seen[n.ID] = struct{}{}
		}

		kept := make([]Edge, 0, len(fn.Edges))
		for _, e := range fn.Edges {
			_, okFrom := seen[e.From]
			_, okTo := seen[e.To]
			switch {
			case !okFrom:
				r.Dropped = append(r.Dropped, DroppedEdge{Function: name, Edge: e, Reason: "unknown source node"})
			case !okTo:
				r.Dropped = append(r.Dropped, DroppedEdge{Function: name, Edge: e, Reason: "unknown target node"})
			default:
				kept = append(kept, e)
			}
		}
		fn.Edges = kept
	}
	return nil
}
