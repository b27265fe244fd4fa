package nddiff

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type PatchTestCase struct {
	description string
	target      string // patch target as a json string
	diff        string // diff as a json string
	expect      string // expected patched value as a json string
}

func RunPatchTestCases(t *testing.T, cases []PatchTestCase) {
	t.Helper()

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			var target, expect interface{}
			if err := json.Unmarshal([]byte(c.target), &target); err != nil {
				t.Fatal(err)
			}
			if err := json.Unmarshal([]byte(c.expect), &expect); err != nil {
				t.Fatal(err)
			}
			var diff map[string]interface{}
			if err := json.Unmarshal([]byte(c.diff), &diff); err != nil {
				t.Fatal(err)
			}

			patched, err := Patch(target, diff)
			if err != nil {
				t.Fatalf("Patch error: %s", err)
			}
			if diffDiff := cmp.Diff(expect, patched); diffDiff != "" {
				t.Errorf("patched result mismatch (-want +got):\n%s", diffDiff)
			}
		})
	}
}

// diffs here arrive through a json round trip, exercising the decoded-form
// indexes the wire contract allows
func TestPatchDecodedDiffs(t *testing.T) {
	cases := []PatchTestCase{
		{
			"empty diff leaves target untouched",
			`{"a":1}`,
			`{}`,
			`{"a":1}`,
		},
		{
			"unchanged-only diff leaves target untouched",
			`{"a":1}`,
			`{"U":{"a":1}}`,
			`{"a":1}`,
		},
		{
			"old-only diff leaves target untouched",
			`1`,
			`{"O":1}`,
			`1`,
		},
		{
			"new value replaces scalar",
			`1`,
			`{"N":2,"O":1}`,
			`2`,
		},
		{
			"new value replaces whole composite",
			`{"a":1}`,
			`{"N":[1,2],"O":{"a":1}}`,
			`[1,2]`,
		},
		{
			"map set, add & remove",
			`{"keep":1,"change":2,"drop":3}`,
			`{"D":{"change":{"N":22,"O":2},"drop":{"R":3},"new":{"A":4}}}`,
			`{"keep":1,"change":22,"new":4}`,
		},
		{
			"map remove with trimmed payload",
			`{"a":1,"b":2}`,
			`{"D":{"b":{"R":null}}}`,
			`{"a":1}`,
		},
		{
			"nested map patch",
			`{"one":{"two":{"three":3}}}`,
			`{"D":{"one":{"D":{"two":{"D":{"three":{"N":33,"O":3}}}}}}}`,
			`{"one":{"two":{"three":33}}}`,
		},
		{
			"list change by counting",
			`[1,2,3]`,
			`{"D":[{"U":1},{"N":9,"O":2},{"U":3}]}`,
			`[1,9,3]`,
		},
		{
			"list change with index resync",
			`[1,2,3]`,
			`{"D":[{"I":2,"N":9,"O":3}]}`,
			`[1,2,9]`,
		},
		{
			"list removal then insertion with scatter",
			`[0,1,2,3]`,
			`{"D":[{"R":0},{"N":4,"I":3},{"A":5}]}`,
			`[1,2,4,5]`,
		},
		{
			"insert at head",
			`[2,3]`,
			`{"D":[{"A":1},{"U":2},{"U":3}]}`,
			`[1,2,3]`,
		},
		{
			"append at tail",
			`[1]`,
			`{"D":[{"U":1},{"A":2}]}`,
			`[1,2]`,
		},
		{
			"remove every item",
			`[1,2]`,
			`{"D":[{"R":1},{"R":2}]}`,
			`[]`,
		},
		{
			"nested list inside map",
			`{"one":[5,7]}`,
			`{"D":{"one":{"D":[{"I":1,"R":7}]},"two":{"A":2}}}`,
			`{"one":[5],"two":2}`,
		},
	}

	RunPatchTestCases(t, cases)
}

func TestPatchMutatesMapsInPlace(t *testing.T) {
	target := map[string]interface{}{
		"change": float64(1),
		"nested": map[string]interface{}{"drop": true},
	}
	nested := target["nested"].(map[string]interface{})

	diff := map[string]interface{}{
		OpDeep: map[string]interface{}{
			"change": map[string]interface{}{OpNew: float64(2), OpOld: float64(1)},
			"nested": map[string]interface{}{
				OpDeep: map[string]interface{}{
					"drop": map[string]interface{}{OpRemoved: true},
				},
			},
		},
	}

	patched, err := Patch(target, diff)
	if err != nil {
		t.Fatalf("Patch error: %s", err)
	}
	if patched.(map[string]interface{})["change"] != float64(2) {
		t.Errorf("returned value not patched")
	}
	// the caller's maps changed underneath, patch works in place
	if target["change"] != float64(2) {
		t.Errorf("target map not mutated in place")
	}
	if _, ok := nested["drop"]; ok {
		t.Errorf("nested map not mutated in place")
	}
}

func TestPatchReturnsRebuiltSequences(t *testing.T) {
	target := []interface{}{float64(1), float64(2)}

	diff := map[string]interface{}{
		OpDeep: []interface{}{
			map[string]interface{}{OpUnchanged: float64(1)},
			map[string]interface{}{OpUnchanged: float64(2)},
			map[string]interface{}{OpAdded: float64(3)},
		},
	}

	patched, err := Patch(target, diff)
	if err != nil {
		t.Fatalf("Patch error: %s", err)
	}
	if got := len(patched.([]interface{})); got != 3 {
		t.Fatalf("patched length: want 3, got %d", got)
	}
	// the original slice header still has its old length, only the returned
	// value reflects the edit
	if len(target) != 2 {
		t.Errorf("input slice header changed length: %d", len(target))
	}
}

func TestPatchErrors(t *testing.T) {
	cases := []struct {
		description string
		target      string
		diff        string
		wantErr     error
	}{
		{
			"deep payload of unsupported shape",
			`{}`,
			`{"D":42}`,
			ErrInvalidDiff,
		},
		{
			"map subdiff not a mapping",
			`{"a":1}`,
			`{"D":{"a":7}}`,
			ErrInvalidDiff,
		},
		{
			"sequence subdiff not a mapping",
			`[1]`,
			`{"D":[7]}`,
			ErrInvalidDiff,
		},
		{
			"index of unsupported type",
			`[1,2]`,
			`{"D":[{"I":"one","R":1}]}`,
			ErrInvalidDiff,
		},
		{
			"removing absent key",
			`{"a":1}`,
			`{"D":{"b":{"R":2}}}`,
			ErrTargetMismatch,
		},
		{
			"changing absent key",
			`{"a":1}`,
			`{"D":{"b":{"N":2,"O":1}}}`,
			ErrTargetMismatch,
		},
		{
			"mapping diff against sequence",
			`[1,2]`,
			`{"D":{"a":{"A":1}}}`,
			ErrTargetMismatch,
		},
		{
			"sequence diff against mapping",
			`{"a":1}`,
			`{"D":[{"R":1}]}`,
			ErrTargetMismatch,
		},
		{
			"change past end of sequence",
			`[1]`,
			`{"D":[{"I":5,"N":9,"O":9}]}`,
			ErrTargetMismatch,
		},
		{
			"remove past end of sequence",
			`[1]`,
			`{"D":[{"U":1},{"R":2}]}`,
			ErrTargetMismatch,
		},
		{
			"insert past end of sequence",
			`[1]`,
			`{"D":[{"I":5,"A":9}]}`,
			ErrTargetMismatch,
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			var target interface{}
			if err := json.Unmarshal([]byte(c.target), &target); err != nil {
				t.Fatal(err)
			}
			var diff map[string]interface{}
			if err := json.Unmarshal([]byte(c.diff), &diff); err != nil {
				t.Fatal(err)
			}

			if _, err := Patch(target, diff); !errors.Is(err, c.wantErr) {
				t.Errorf("want error %q, got %v", c.wantErr, err)
			}
		})
	}
}
