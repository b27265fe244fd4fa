// Package nddiff computes recursive diffs for nested data structures and
// applies them back as patches.
//
// Unlike the standard unix diff utility, which operates on lines of text,
// nddiff follows the structure of the data itself: mappings are diffed by
// key, sequences are aligned on their longest common runs, and everything
// else is compared by value. The result maps onto the shape of the inputs,
// so a one-key change in a large document produces a one-key diff.
//
// nddiff operates on the go types created by unmarshaling generic
// JSON/YAML-style documents, which are two complex types:
//
//	map[string]interface{}
//	[]interface{}
//
// and scalars: string, bool, float64, nil, plus the integer types some
// decoders produce. By operating on native go types nddiff can compare
// documents decoded from different formats.
//
// A diff is itself such a value: a map[string]interface{} whose keys are
// one-letter operations:
//
//	"A" added item, holds the new value
//	"D" deeper changes, holds a subdiff per mapping key or sequence item
//	"I" sequence item's index, present only when prior items were omitted
//	"N" changed item's new value
//	"O" changed item's old value
//	"R" removed item, holds the removed value (nil when trimmed)
//	"U" unchanged item, holds the value itself
//
// Diff metadata alternates with actual data, so a diff can be serialized by
// any generic encoder and fed back to Patch after a round trip. Each
// operation except "D" and "I" may be omitted when computing a diff; see the
// DiffOption functions. Omitting operations trades completeness for size:
// a diff computed without "N" or "A" can no longer fully reconstruct the
// second document. That is a configuration choice, not an error.
//
// nddiff also includes a patch applier and a terminal formatter, see Patch
// and FormatPretty for details
package nddiff
