// SPDX-License-Identifier: Apache-2.0

package validators

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tkarimov/casesync/models"
)

// ValidateTransaction checks the envelope of a case transaction before it is
// applied: identity fields present, at least one mutation, and every
// mutation naming a well-formed case ID. A create block must carry an owner
// so the case never lands unowned.
func ValidateTransaction(tx *models.CaseTransaction) error {
	return validation.ValidateStruct(tx,
		validation.Field(&tx.TransactionID, validation.Required),
		validation.Field(&tx.Domain, identifierRules()...),
		validation.Field(&tx.UserID, validation.Required),
		validation.Field(&tx.Date, validation.Required),
		validation.Field(&tx.Mutations, validation.Required, validation.Each(validation.By(validateMutation))),
	)
}

func validateMutation(value any) error {
	m, ok := value.(models.CaseMutation)
	if !ok {
		return validation.NewError("validation_mutation", "must be a case mutation")
	}

	if err := ValidateCaseID(m.CaseID); err != nil {
		return err
	}

	if m.Create != nil {
		if err := validation.ValidateStruct(m.Create,
			validation.Field(&m.Create.CaseType, validation.Required),
			validation.Field(&m.Create.OwnerID, identifierRules()...),
		); err != nil {
			return err
		}
	}

	for _, ic := range m.IndexChanges {
		if err := validation.Validate(ic.Identifier, validation.Required); err != nil {
			return err
		}
		// Empty ReferencedID is an index removal; a set must reference a
		// well-formed case ID.
		if ic.ReferencedID != "" {
			if err := ValidateCaseID(ic.ReferencedID); err != nil {
				return err
			}
		}
	}

	return nil
}
