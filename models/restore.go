package models

import "time"

// RestoreUser identifies the principal a restore is computed for. Cases are
// pulled in when their owner is the user itself or any of the user's groups.
type RestoreUser struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Domain   string   `json:"domain"`
	GroupIDs []string `json:"group_ids,omitempty"`
}

// OwnerIDs returns every owner whose cases belong on the user's device:
// the user's own ID plus all group IDs.
func (u *RestoreUser) OwnerIDs() []string {
	owners := make([]string, 0, len(u.GroupIDs)+1)
	owners = append(owners, u.UserID)
	owners = append(owners, u.GroupIDs...)
	return owners
}

// RestoreRequest carries the device-supplied parameters of one restore.
type RestoreRequest struct {
	User RestoreUser

	// Version selects the wire-format variant ("1.0" or "2.0").
	Version string

	// SinceLogID is the restore token of the device's last completed sync.
	// Empty means a full initial sync.
	SinceLogID string

	// StateHash is the device's claim about its current case-ID set.
	// Optional; when present it is validated against the server-side hash
	// of the prior log.
	StateHash string

	// OverwriteCache skips the cached-payload lookup and replaces any
	// cached bytes with the freshly computed payload.
	OverwriteCache bool

	// ForceCache opts an initial sync into the response cache, which
	// otherwise only holds incremental payloads.
	ForceCache bool
}

// RestoreState is the ephemeral, request-scoped bundle threaded through one
// restore computation. It is owned by exactly one request and discarded once
// the response is produced; only the newly created SyncLog outlives it.
type RestoreState struct {
	Request  RestoreRequest
	PriorLog *SyncLog

	StartedAt time.Time

	// CacheHit is set when the response was served from the cached payload
	// of the prior log, in which case NewLog stays nil.
	CacheHit bool

	// NewLog is the sync log persisted at the end of a computed restore.
	NewLog *SyncLog

	// Payload is the rendered response body.
	Payload []byte
}
