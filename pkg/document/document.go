package document

// Document is a schemaless mapping from string keys to arbitrary nested
// values (mappings, sequences, scalars), as produced by decoding YAML or
// JSON into `any`. Index templates and ISM policies are both represented
// this way because their schemas vary by server version and entity kind.
type Document = map[string]any

// Copy returns a deep copy of doc. Nested mappings and sequences are
// duplicated; scalar values are shared.
func Copy(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return Copy(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}

// Equal reports whether two values are deeply equal, ignoring mapping key
// order and sequence element order. Numeric scalars compare by value across
// the representations produced by the YAML and JSON decoders (int, int64,
// uint64, float64).
func Equal(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bval, ok := bv[k]
			if !ok || !Equal(v, bval) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		// Order-insensitive multiset match: every element of a must pair
		// with a distinct, equal element of b.
		used := make([]bool, len(bv))
		for _, item := range av {
			matched := false
			for i, other := range bv {
				if used[i] {
					continue
				}
				if Equal(item, other) {
					used[i] = true
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		return true
	default:
		return scalarEqual(a, b)
	}
}

func scalarEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
