package cfg

// Normalize returns the node list of the function whose key comes first.
// A nil result yields ok == false, which callers treat as "nothing to
// render". The returned function is a copy; measuring it never touches res.
func Normalize(res *Result) (*Function, bool) {
	if res == nil || len(res.names) == 0 {
		return nil, false
	}
	return res.funcs[res.names[0]].Clone(), true
}

// Select returns a copy of the named function. An empty name behaves like
// [Normalize].
func Select(res *Result, name string) (*Function, bool) {
	if name == "" {
		return Normalize(res)
	}
	if res == nil {
		return nil, false
	}
	fn, ok := res.funcs[name]
	if !ok {
		return nil, false
	}
	return fn.Clone(), true
}

// FirstName returns the name Normalize would select.
func FirstName(res *Result) string {
	if res == nil || len(res.names) == 0 {
		return ""
	}
	return res.names[0]
}
