// Package forms holds the wizard's form payload type and the two merge
// rules the session and recovery layers disagree on: incoming partial
// updates overwrite, recovered drafts never do.
package forms

// Data maps field names to values. Values are strings for flat inputs and
// nested maps for structured fields (address blocks), which is why the
// value type is any and cloning has to recurse.
type Data map[string]any

// Clone returns a deep copy of d. Nested maps and slices are copied so the
// result can be handed to another goroutine or mutated freely.
func Clone(d Data) Data {
	if d == nil {
		return nil
	}
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a single field value. Unknown types are returned
// as-is; after a JSON round trip only maps, slices, and scalars remain.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = CloneValue(val)
		}
		return out
	case Data:
		return map[string]any(Clone(t))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = CloneValue(val)
		}
		return out
	default:
		return v
	}
}

// Apply shallow-merges partial over existing: keys in partial win, keys
// only in existing are preserved. Neither input is mutated.
func Apply(existing, partial Data) Data {
	out := make(Data, len(existing)+len(partial))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range partial {
		out[k] = v
	}
	return out
}

// Merge combines current with recovered so that current always wins on key
// collision. Recovered data fills gaps only: it never overwrites a value
// the user has already re-entered. Neither input is mutated.
func Merge(current, recovered Data) Data {
	out := make(Data, len(current)+len(recovered))
	for k, v := range recovered {
		out[k] = v
	}
	for k, v := range current {
		out[k] = v
	}
	return out
}
