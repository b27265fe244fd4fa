package nddiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// FormatPrettyString is a convenience wrapper that outputs to a string
// instead of an io.Writer
func FormatPrettyString(diff map[string]interface{}, colorize bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, diff, colorize); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report of a diff to w, two-space indented per
// nesting level:
//
//	red    "-" for removals and old values
//	green  "+" for additions and new values
//	"  " for unchanged items and headers of deeper changes
//
// Sequence items are labeled with their index in the patched document's
// coordinate where it is known.
func FormatPretty(w io.Writer, diff map[string]interface{}, colorize bool) error {
	var add, del *color.Color
	if colorize {
		add = color.New(color.FgGreen)
		del = color.New(color.FgRed)
	}
	return formatPretty(w, diff, "", 0, add, del)
}

func formatPretty(w io.Writer, diff map[string]interface{}, label string, indent int, add, del *color.Color) error {
	pad := strings.Repeat("  ", indent)
	prefix := pad + label

	if deep, ok := diff[OpDeep]; ok {
		if label != "" {
			if _, err := fmt.Fprintf(w, "  %s\n", prefix); err != nil {
				return err
			}
			indent++
		}

		switch changes := deep.(type) {
		case map[string]interface{}:
			for _, key := range sortedKeys(changes) {
				sub, ok := changes[key].(map[string]interface{})
				if !ok {
					return fmt.Errorf("%w: subdiff for key %q is %T, want mapping",
						ErrInvalidDiff, key, changes[key])
				}
				if err := formatPretty(w, sub, key+":", indent, add, del); err != nil {
					return err
				}
			}
		case []interface{}:
			i := 0
			for _, raw := range changes {
				sub, ok := raw.(map[string]interface{})
				if !ok {
					return fmt.Errorf("%w: sequence subdiff is %T, want mapping", ErrInvalidDiff, raw)
				}
				if idx, ok := sub[OpIndex]; ok {
					n, err := asIndex(idx)
					if err != nil {
						return err
					}
					i = n
				}
				if err := formatPretty(w, sub, fmt.Sprintf("[%d]:", i), indent, add, del); err != nil {
					return err
				}
				if !hasOp(sub, OpAdded) {
					i++
				}
			}
		default:
			return fmt.Errorf("%w: %q payload is %T, want mapping or sequence",
				ErrInvalidDiff, OpDeep, deep)
		}
		return nil
	}

	if v, ok := diff[OpUnchanged]; ok {
		return writeLine(w, nil, "  ", prefix, v)
	}
	if v, ok := diff[OpAdded]; ok {
		return writeLine(w, add, "+ ", prefix, v)
	}
	if v, ok := diff[OpRemoved]; ok {
		return writeLine(w, del, "- ", prefix, v)
	}

	// changed leaf: old line first, then new, either may be absent
	if v, ok := diff[OpOld]; ok {
		if err := writeLine(w, del, "- ", prefix, v); err != nil {
			return err
		}
	}
	if v, ok := diff[OpNew]; ok {
		return writeLine(w, add, "+ ", prefix, v)
	}
	return nil
}

func writeLine(w io.Writer, c *color.Color, marker, prefix string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	line := marker + prefix
	if prefix != "" {
		line += " "
	}
	line += string(data)

	if c != nil {
		_, err = c.Fprintln(w, line)
	} else {
		_, err = fmt.Fprintln(w, line)
	}
	return err
}

// FormatPrettyStats prints a one-line summary of diff stats
func FormatPrettyStats(st *Stats) string {
	if st == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s. %s. %s. %s.\n",
		countWord(st.Added, "addition", "additions"),
		countWord(st.Removed, "removal", "removals"),
		countWord(st.Changed, "change", "changes"),
		countWord(st.Unchanged, "unchanged item", "unchanged items"),
	)
}

func countWord(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
