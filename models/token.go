package models

import "github.com/golang-jwt/jwt/v5"

// RestoreClaims is the JWT claim set presented by a syncing device. Devices
// authenticate out-of-band; the sync core only validates the token signature
// and reads the restore principal out of it.
//
// The subject ("sub") claim carries the user ID; the custom claims carry the
// username, the project domain, and the user's group memberships.
type RestoreClaims struct {
	jwt.RegisteredClaims

	Username string   `json:"username"`
	Domain   string   `json:"domain"`
	GroupIDs []string `json:"group_ids,omitempty"`
}

// Token bundles a parsed JWT with the restore user extracted from its claims.
type Token struct {
	// Token is the underlying JWT, used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// User is the restore principal decoded from the claims.
	User RestoreUser `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
