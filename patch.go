package nddiff

import (
	"fmt"
)

// Patch applies a diff to target, returning the patched value. Mappings are
// modified in place; sequences are rebuilt at the edited level, go slice
// semantics leave no safe way to grow them through an interface. Callers
// must therefore use the returned value, the in-place mutation of nested
// mappings is a side effect, not the whole contract.
//
// Patch accepts diffs produced by Diff as well as diffs decoded from a
// serialized form, where indexes arrive as whatever integer type the decoder
// favors. It never guesses: a diff that addresses a key or index the target
// does not have fails with ErrTargetMismatch, and a malformed diff fails
// with ErrInvalidDiff.
func Patch(target interface{}, diff map[string]interface{}) (interface{}, error) {
	if deep, ok := diff[OpDeep]; ok {
		switch changes := deep.(type) {
		case map[string]interface{}:
			return patchMap(target, changes)
		case []interface{}:
			return patchSlice(target, changes)
		default:
			return nil, fmt.Errorf("%w: %q payload is %T, want mapping or sequence",
				ErrInvalidDiff, OpDeep, deep)
		}
	}

	if n, ok := diff[OpNew]; ok {
		return n, nil
	}

	// empty, unchanged-only or old-only nodes leave the target as is
	return target, nil
}

func patchMap(target interface{}, changes map[string]interface{}) (interface{}, error) {
	tm, ok := target.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: mapping diff applied to %T", ErrTargetMismatch, target)
	}

	for key, raw := range changes {
		sub, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: subdiff for key %q is %T, want mapping",
				ErrInvalidDiff, key, raw)
		}

		switch {
		case hasOp(sub, OpDeep), hasOp(sub, OpNew):
			cur, ok := tm[key]
			if !ok {
				return nil, fmt.Errorf("%w: key %q not present in target", ErrTargetMismatch, key)
			}
			patched, err := Patch(cur, sub)
			if err != nil {
				return nil, err
			}
			tm[key] = patched
		case hasOp(sub, OpAdded):
			tm[key] = sub[OpAdded]
		case hasOp(sub, OpRemoved):
			if _, ok := tm[key]; !ok {
				return nil, fmt.Errorf("%w: removing absent key %q", ErrTargetMismatch, key)
			}
			delete(tm, key)
		}
	}

	return tm, nil
}

func patchSlice(target interface{}, changes []interface{}) (interface{}, error) {
	ts, ok := target.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: sequence diff applied to %T", ErrTargetMismatch, target)
	}

	i, offset := 0, 0 // cursor into ts, net length change so far

	for _, raw := range changes {
		sub, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: sequence subdiff is %T, want mapping", ErrInvalidDiff, raw)
		}

		if idx, ok := sub[OpIndex]; ok {
			n, err := asIndex(idx)
			if err != nil {
				return nil, err
			}
			i = n + offset
		}

		switch {
		case hasOp(sub, OpDeep), hasOp(sub, OpNew):
			if i < 0 || i >= len(ts) {
				return nil, fmt.Errorf("%w: index %d outside target of length %d",
					ErrTargetMismatch, i, len(ts))
			}
			patched, err := Patch(ts[i], sub)
			if err != nil {
				return nil, err
			}
			ts[i] = patched
			i++
		case hasOp(sub, OpAdded):
			if i < 0 || i > len(ts) {
				return nil, fmt.Errorf("%w: insert at %d outside target of length %d",
					ErrTargetMismatch, i, len(ts))
			}
			ts = append(ts, nil)
			copy(ts[i+1:], ts[i:])
			ts[i] = sub[OpAdded]
			offset++
			i++
		case hasOp(sub, OpRemoved):
			if i < 0 || i >= len(ts) {
				return nil, fmt.Errorf("%w: remove at %d outside target of length %d",
					ErrTargetMismatch, i, len(ts))
			}
			ts = append(ts[:i], ts[i+1:]...)
			offset--
			// the removed slot now holds the next element, the cursor stays
		default:
			i++
		}
	}

	return ts, nil
}

// asIndex normalizes an OpIndex value. Diffs fresh from Diff carry int,
// decoded diffs carry whatever the codec produced.
func asIndex(v interface{}) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case uint64:
		return int(x), nil
	case float64:
		return int(x), nil
	default:
		return 0, fmt.Errorf("%w: %q value is %T, want integer", ErrInvalidDiff, OpIndex, v)
	}
}
