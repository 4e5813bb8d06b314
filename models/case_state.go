package models

// CaseState is the minimal phone-side projection of a case tracked inside a
// sync log: the case ID plus the index edges the device knows about. The
// edges are kept so that a log's dependent-case closure can be recomputed
// without consulting the live case store (e.g. when a case is archived out
// of the footprint).
type CaseState struct {
	CaseID  string      `json:"case_id"`
	Indices []CaseIndex `json:"indices,omitempty"`
}

// NewCaseState projects a full case down to its sync-log representation.
func NewCaseState(c *Case) CaseState {
	st := CaseState{CaseID: c.CaseID}
	if len(c.Indices) > 0 {
		st.Indices = make([]CaseIndex, len(c.Indices))
		copy(st.Indices, c.Indices)
	}
	return st
}
