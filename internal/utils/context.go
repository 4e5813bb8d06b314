// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, state hashing, HTTP
// response writing, JWT token generation and validation, and UUID
// generation for restore tokens.
package utils

import (
	"context"

	"github.com/tkarimov/casesync/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RestoreUserCtxKey is the key used to store the authenticated restore user
// in the request context. Used together with GetRestoreUserFromContext for
// type-safe retrieval.
var RestoreUserCtxKey = contextKey("restoreUser")

// GetRestoreUserFromContext retrieves the authenticated restore user from
// the context.
//
// Returns the user and an ok flag:
//   - ok == true:  value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
func GetRestoreUserFromContext(ctx context.Context) (models.RestoreUser, bool) {
	user, ok := ctx.Value(RestoreUserCtxKey).(models.RestoreUser)
	return user, ok
}
