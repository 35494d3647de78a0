package pipeline

import (
	"bytes"
	"strings"

	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/errors"
)

// Parsed is a decoded compile result with one function selected.
type Parsed struct {
	// Name is the selected function. Empty when the document carries no cfg.
	Name string

	// Function is a private copy of the selected function, safe to size.
	Function *cfg.Function

	// Result is the full validated cfg mapping.
	Result *cfg.Result
}

// Parse decodes a compile result document and selects function, or the
// first function in key order when function is empty.
//
// A document without a cfg field, or with an empty one, is not an error: ok
// is false and nothing should be drawn. Naming a function the document does
// not contain is an error, unlike in the pane, which falls back to the first.
func Parse(data []byte, function string) (p Parsed, ok bool, err error) {
	cr, err := cfg.ReadResult(bytes.NewReader(data))
	if err != nil {
		return Parsed{}, false, err
	}
	if cr.CFG == nil {
		return Parsed{}, false, nil
	}
	res := cr.CFG

	var fn *cfg.Function
	name := function
	if name == "" {
		name = cfg.FirstName(res)
		fn, ok = cfg.Normalize(res)
	} else {
		fn, ok = cfg.Select(res, name)
		if !ok {
			return Parsed{}, false, errors.New(errors.ErrCodeInvalidFunction,
				"function %q not found (have: %s)", name, strings.Join(res.Names(), ", "))
		}
	}
	if !ok {
		return Parsed{}, false, nil
	}
	return Parsed{Name: name, Function: fn, Result: res}, true, nil
}
