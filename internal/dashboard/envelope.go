package dashboard

// ExtractSequence unwraps list responses. It accepts a bare list, {data: [...]}
// and {data: {data: [...]}}, in that order, and returns an empty slice for
// anything else.
func ExtractSequence(response any) []any {
	if seq, ok := asSlice(response); ok {
		return seq
	}
	data := field(response, "data")
	if seq, ok := asSlice(data); ok {
		return seq
	}
	if seq, ok := asSlice(field(data, "data")); ok {
		return seq
	}
	return []any{}
}

// ExtractItem unwraps single-record responses: data.data, then data, then the
// response itself. The first non-nil value wins.
func ExtractItem(response any) any {
	data := field(response, "data")
	if inner := field(data, "data"); inner != nil {
		return inner
	}
	if data != nil {
		return data
	}
	return response
}

// Records keeps the object elements of a list response.
func Records(response any) []map[string]any {
	seq := ExtractSequence(response)
	out := make([]map[string]any, 0, len(seq))
	for _, v := range seq {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	default:
		return nil, false
	}
}

func field(v any, key string) any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}
