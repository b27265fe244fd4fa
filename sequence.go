package nddiff

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// canonical returns a deterministic byte encoding of v, used as an equality
// surrogate wherever composite values must be compared or serve as matching
// keys. Two values encode equally iff they are deeply equal: every scalar is
// type-tagged, strings are length-framed, and mapping keys are sorted, so
// unlike a hash the encoding cannot collide. Stability is only promised
// within one process run.
func canonical(v interface{}) []byte {
	buf := &bytes.Buffer{}
	writeCanonical(buf, v)
	return buf.Bytes()
}

func writeCanonical(buf *bytes.Buffer, v interface{}) {
	switch x := v.(type) {
	case nil:
		buf.WriteByte('z')
	case bool:
		if x {
			buf.WriteByte('t')
		} else {
			buf.WriteByte('f')
		}
	case string:
		writeCanonicalString(buf, x)
	case float64:
		buf.WriteByte('n')
		buf.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	case float32:
		buf.WriteByte('n')
		buf.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case int:
		writeCanonicalInt(buf, int64(x))
	case int8:
		writeCanonicalInt(buf, int64(x))
	case int16:
		writeCanonicalInt(buf, int64(x))
	case int32:
		writeCanonicalInt(buf, int64(x))
	case int64:
		writeCanonicalInt(buf, x)
	case uint:
		writeCanonicalUint(buf, uint64(x))
	case uint8:
		writeCanonicalUint(buf, uint64(x))
	case uint16:
		writeCanonicalUint(buf, uint64(x))
	case uint32:
		writeCanonicalUint(buf, uint64(x))
	case uint64:
		writeCanonicalUint(buf, x)
	case []interface{}:
		buf.WriteByte('[')
		for _, ch := range x {
			writeCanonical(buf, ch)
		}
		buf.WriteByte(']')
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for key := range x {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for _, key := range keys {
			writeCanonicalString(buf, key)
			writeCanonical(buf, x[key])
		}
		buf.WriteByte('}')
	default:
		// values outside the model compare by their printed form
		fmt.Fprintf(buf, "g%T=%v", x, x)
	}
}

func writeCanonicalString(buf *bytes.Buffer, s string) {
	buf.WriteByte('s')
	buf.WriteString(strconv.Itoa(len(s)))
	buf.WriteByte(':')
	buf.WriteString(s)
}

func writeCanonicalInt(buf *bytes.Buffer, i int64) {
	buf.WriteByte('i')
	buf.WriteString(strconv.FormatInt(i, 10))
}

func writeCanonicalUint(buf *bytes.Buffer, u uint64) {
	buf.WriteByte('u')
	buf.WriteString(strconv.FormatUint(u, 10))
}

// matchBlock describes a contiguous run of size elements equal between two
// sequences, starting at index a in the first and b in the second
type matchBlock struct {
	a, b, size int
}

// matchingBlocks aligns two sequences of canonical encodings, returning
// their matching blocks in ascending order, closed by a zero-length sentinel
// at (len(a), len(b)). It repeatedly takes the longest run common to the
// ranges left unmatched so far; among runs of equal length the one starting
// earliest in a wins, then earliest in b. Every element is eligible to
// match, there is no junk heuristic. Pure function, safe for concurrent use.
func matchingBlocks(a, b []string) []matchBlock {
	b2j := make(map[string][]int, len(b))
	for j, s := range b {
		b2j[s] = append(b2j[s], j)
	}

	type span struct {
		alo, ahi, blo, bhi int
	}
	spans := []span{{0, len(a), 0, len(b)}}

	var blocks []matchBlock
	for len(spans) > 0 {
		sp := spans[len(spans)-1]
		spans = spans[:len(spans)-1]

		i, j, k := longestMatch(a, b2j, sp.alo, sp.ahi, sp.blo, sp.bhi)
		if k == 0 {
			continue
		}
		blocks = append(blocks, matchBlock{i, j, k})

		if sp.alo < i && sp.blo < j {
			spans = append(spans, span{sp.alo, i, sp.blo, j})
		}
		if i+k < sp.ahi && j+k < sp.bhi {
			spans = append(spans, span{i + k, sp.ahi, j + k, sp.bhi})
		}
	}

	sort.Slice(blocks, func(x, y int) bool {
		if blocks[x].a != blocks[y].a {
			return blocks[x].a < blocks[y].a
		}
		return blocks[x].b < blocks[y].b
	})

	// runs split across recursion boundaries rejoin here
	var merged []matchBlock
	for _, blk := range blocks {
		if n := len(merged); n > 0 &&
			merged[n-1].a+merged[n-1].size == blk.a &&
			merged[n-1].b+merged[n-1].size == blk.b {
			merged[n-1].size += blk.size
			continue
		}
		merged = append(merged, blk)
	}

	return append(merged, matchBlock{len(a), len(b), 0})
}

// longestMatch finds the longest run of pairwise-equal elements within
// a[alo:ahi] and b[blo:bhi]. b2j must index every element of b to its
// ascending positions. Runs ending at (i, j) extend runs ending at
// (i-1, j-1), tracked per b-index; scanning a then b in ascending order
// makes the earliest maximal run win.
func longestMatch(a []string, b2j map[string][]int, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := map[int]int{}

	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	return besti, bestj, bestsize
}

// diffSlices compares two sequences. Matching blocks anchor the walk; the
// stretch before each block is drained by pairing leftover items from both
// sides, then emitting removals for the rest of a's side, then additions for
// b's. Whenever an item produces no output its slot vanishes from the diff,
// so the next emitted subdiff carries OpIndex to resynchronize the patcher's
// cursor.
func (d *Differ) diffSlices(a, b []interface{}) map[string]interface{} {
	aEnc := make([]string, len(a))
	for i, v := range a {
		aEnc[i] = string(canonical(v))
	}
	bEnc := make([]string, len(b))
	for j, v := range b {
		bEnc[j] = string(canonical(v))
	}

	var children []interface{}
	i, j := 0, 0
	pendingIndex := false

	emit := func(sub map[string]interface{}) {
		if pendingIndex {
			sub[OpIndex] = i
			pendingIndex = false
		}
		children = append(children, sub)
	}

	for _, blk := range matchingBlocks(aEnc, bEnc) {
		for i < blk.a && j < blk.b {
			if sub := d.diff(a[i], b[j]); len(sub) > 0 {
				emit(sub)
			} else {
				pendingIndex = true
			}
			i++
			j++
		}

		for i < blk.a { // removed
			if d.cfg.Removed {
				emit(map[string]interface{}{OpRemoved: d.removedValue(a[i])})
			} else {
				pendingIndex = true
			}
			i++
		}

		for j < blk.b { // added
			if d.cfg.Added {
				emit(map[string]interface{}{OpAdded: b[j]})
			} else {
				pendingIndex = true
			}
			j++
		}
	}

	if len(children) == 0 {
		return map[string]interface{}{}
	}
	return map[string]interface{}{OpDeep: children}
}
