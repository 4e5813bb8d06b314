package models

import "time"

// CleanlinessFlag records, per (domain, owner), whether the owner's case
// subgraph is "clean": every case owned by the owner has an index closure
// entirely owned by the same owner. A clean flag lets the restore engine
// skip footprint expansion: the owned set is the footprint.
//
// When the flag is dirty, HintCaseID may name a witness case that crosses
// the ownership boundary. The hint is advisory: once the edge it describes
// no longer exists the flag must be recomputed from scratch.
type CleanlinessFlag struct {
	Domain       string    `json:"domain"`
	OwnerID      string    `json:"owner_id"`
	IsClean      bool      `json:"is_clean"`
	HintCaseID   string    `json:"hint_case_id,omitempty"`
	LastComputed time.Time `json:"last_computed"`
}
