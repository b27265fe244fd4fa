package nddiff

// Stats holds per-operation counts for a computed diff
type Stats struct {
	Added     int `json:"added,omitempty"`     // items present only in the second document
	Removed   int `json:"removed,omitempty"`   // items present only in the first document
	Changed   int `json:"changed,omitempty"`   // leaf items with differing values
	Unchanged int `json:"unchanged,omitempty"` // items equal in both documents
}

// Changes returns the number of counted operations that alter the document
func (s Stats) Changes() int {
	return s.Added + s.Removed + s.Changed
}

// CalcStats walks a diff counting its operations. Nodes under a disabled
// operation were never emitted, so counts reflect the diff as configured,
// not the full difference between the inputs.
func CalcStats(diff map[string]interface{}) *Stats {
	st := &Stats{}
	countOps(diff, st)
	return st
}

func countOps(diff map[string]interface{}, st *Stats) {
	if deep, ok := diff[OpDeep]; ok {
		switch changes := deep.(type) {
		case map[string]interface{}:
			for _, raw := range changes {
				if sub, ok := raw.(map[string]interface{}); ok {
					countOps(sub, st)
				}
			}
		case []interface{}:
			for _, raw := range changes {
				if sub, ok := raw.(map[string]interface{}); ok {
					countOps(sub, st)
				}
			}
		}
		return
	}

	switch {
	case hasOp(diff, OpAdded):
		st.Added++
	case hasOp(diff, OpRemoved):
		st.Removed++
	case hasOp(diff, OpNew), hasOp(diff, OpOld):
		st.Changed++
	case hasOp(diff, OpUnchanged):
		st.Unchanged++
	}
}
