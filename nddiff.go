package nddiff

import (
	"bytes"
	"sort"
)

// Operations a diff node may carry. A diff node is a plain
// map[string]interface{} holding a subset of these keys, so computed diffs
// survive a round trip through any generic Value encoder.
const (
	// OpAdded marks an item present only in the second document
	OpAdded = "A"
	// OpDeep marks a node whose children changed, its payload is a
	// map[string]interface{} of subdiffs by key or a []interface{} of
	// subdiffs by position
	OpDeep = "D"
	// OpIndex carries a sequence item's index in the first document. It is
	// only attached when prior items were omitted from the diff and the
	// position can no longer be recovered by counting
	OpIndex = "I"
	// OpNew carries the second document's value for a changed item
	OpNew = "N"
	// OpOld carries the first document's value for a changed item
	OpOld = "O"
	// OpRemoved marks an item present only in the first document
	OpRemoved = "R"
	// OpUnchanged marks an item equal in both documents
	OpUnchanged = "U"
)

// DiffConfig holds the toggles for diff computation. Every operation except
// OpDeep and OpIndex can be dropped from the output; those two are
// structural and always emitted when reconstruction needs them.
type DiffConfig struct {
	// emit OpAdded nodes
	Added bool
	// emit OpNew values on changed items
	New bool
	// emit OpOld values on changed items
	Old bool
	// emit OpRemoved nodes
	Removed bool
	// emit OpUnchanged nodes
	Unchanged bool
	// TrimRemoved replaces removed values with nil in the diff. Forward
	// patching never needs the removed payload, so trimming only loses the
	// ability to reverse the diff
	TrimRemoved bool
	// Provide a non-nil stats pointer & Diff will populate it with counts
	// from the computed diff
	Stats *Stats
}

// DiffOption is a function that adjusts a config, zero or more DiffOptions
// can be passed to New or Diff
type DiffOption func(cfg *DiffConfig)

// OptionOmitAdded drops added items from computed diffs
func OptionOmitAdded() DiffOption {
	return func(cfg *DiffConfig) { cfg.Added = false }
}

// OptionOmitNew drops new values of changed items from computed diffs
func OptionOmitNew() DiffOption {
	return func(cfg *DiffConfig) { cfg.New = false }
}

// OptionOmitOld drops old values of changed items from computed diffs
func OptionOmitOld() DiffOption {
	return func(cfg *DiffConfig) { cfg.Old = false }
}

// OptionOmitRemoved drops removed items from computed diffs
func OptionOmitRemoved() DiffOption {
	return func(cfg *DiffConfig) { cfg.Removed = false }
}

// OptionOmitUnchanged drops unchanged items from computed diffs
func OptionOmitUnchanged() DiffOption {
	return func(cfg *DiffConfig) { cfg.Unchanged = false }
}

// OptionTrimRemoved replaces removed values with nil in computed diffs
func OptionTrimRemoved() DiffOption {
	return func(cfg *DiffConfig) { cfg.TrimRemoved = true }
}

// OptionSetStats will populate the passed-in stats pointer when Diff is
// called
func OptionSetStats(st *Stats) DiffOption {
	return func(cfg *DiffConfig) { cfg.Stats = st }
}

// Differ computes recursive diffs for pairs of values. The default
// configuration emits every operation and keeps removed payloads. A Differ
// holds no per-call state, concurrent use is safe.
type Differ struct {
	cfg *DiffConfig
}

// New creates a Differ with the given configuration options
func New(opts ...DiffOption) *Differ {
	cfg := &DiffConfig{
		Added:     true,
		New:       true,
		Old:       true,
		Removed:   true,
		Unchanged: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Differ{cfg: cfg}
}

// Diff computes the recursive diff of a and b with the given options. It is
// a convenience wrapper around New(opts...).Diff
func Diff(a, b interface{}, opts ...DiffOption) map[string]interface{} {
	return New(opts...).Diff(a, b)
}

// Diff computes the recursive diff of a and b. An empty map means no
// recorded change: either the values are equal and unchanged reporting is
// off, or every difference fell under a disabled operation.
func (d *Differ) Diff(a, b interface{}) map[string]interface{} {
	ret := d.diff(a, b)
	if d.cfg.Stats != nil {
		*d.cfg.Stats = *CalcStats(ret)
	}
	return ret
}

// diff dispatches on the shapes of a and b: equal values short-circuit,
// mapping pairs and sequence pairs recurse by their own rules, and every
// other combination (mapping vs sequence included) is an opaque leaf
// change.
func (d *Differ) diff(a, b interface{}) map[string]interface{} {
	if bytes.Equal(canonical(a), canonical(b)) {
		if d.cfg.Unchanged {
			return map[string]interface{}{OpUnchanged: a}
		}
		return map[string]interface{}{}
	}

	if am, ok := a.(map[string]interface{}); ok {
		if bm, ok := b.(map[string]interface{}); ok {
			return d.diffMaps(am, bm)
		}
	}

	if as, ok := a.([]interface{}); ok {
		if bs, ok := b.([]interface{}); ok {
			return d.diffSlices(as, bs)
		}
	}

	return d.diffLeaf(a, b)
}

// diffMaps compares two mappings key by key, one subdiff per key present in
// either input
func (d *Differ) diffMaps(a, b map[string]interface{}) map[string]interface{} {
	children := map[string]interface{}{}

	for _, key := range unionKeys(a, b) {
		av, inA := a[key]
		bv, inB := b[key]

		switch {
		case inA && inB:
			if sub := d.diff(av, bv); len(sub) > 0 {
				children[key] = sub
			}
		case inA: // removed
			if d.cfg.Removed {
				children[key] = map[string]interface{}{OpRemoved: d.removedValue(av)}
			}
		default: // added
			if d.cfg.Added {
				children[key] = map[string]interface{}{OpAdded: bv}
			}
		}
	}

	if len(children) == 0 {
		return map[string]interface{}{}
	}
	return map[string]interface{}{OpDeep: children}
}

// diffLeaf handles values that are neither equal, nor both mappings, nor
// both sequences. With OpNew and OpOld disabled the result is empty and the
// change goes unrecorded.
func (d *Differ) diffLeaf(a, b interface{}) map[string]interface{} {
	ret := map[string]interface{}{}
	if d.cfg.New {
		ret[OpNew] = b
	}
	if d.cfg.Old {
		ret[OpOld] = a
	}
	return ret
}

func (d *Differ) removedValue(v interface{}) interface{} {
	if d.cfg.TrimRemoved {
		return nil
	}
	return v
}

// unionKeys returns the sorted distinct keys of both maps. Sorting keeps
// construction order deterministic across runs.
func unionKeys(a, b map[string]interface{}) []string {
	keys := make([]string, 0, len(a)+len(b))
	for key := range a {
		keys = append(keys, key)
	}
	for key := range b {
		if _, ok := a[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func hasOp(node map[string]interface{}, op string) bool {
	_, ok := node[op]
	return ok
}
