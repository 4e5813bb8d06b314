// SPDX-License-Identifier: Apache-2.0

// Package validators holds the input validation rules for device-facing
// identifiers and transaction envelopes, built on ozzo-validation.
package validators

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// identifierPattern admits the identifier alphabet shared by domains, owner
// IDs and case IDs: no whitespace, no path separators.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

const maxIdentifierLength = 100

// identifierRules is the shared rule set for all identifier-shaped inputs.
func identifierRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.RuneLength(1, maxIdentifierLength),
		validation.Match(identifierPattern),
	}
}

// ValidateDomain checks a project-space name.
func ValidateDomain(domain string) error {
	return validation.Validate(domain, identifierRules()...)
}

// ValidateOwnerID checks a user or group identifier.
func ValidateOwnerID(ownerID string) error {
	return validation.Validate(ownerID, identifierRules()...)
}

// ValidateCaseID checks a case identifier.
func ValidateCaseID(caseID string) error {
	return validation.Validate(caseID, identifierRules()...)
}
