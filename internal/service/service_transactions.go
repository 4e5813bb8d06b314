// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/store"
	"github.com/tkarimov/casesync/internal/validators"
	"github.com/tkarimov/casesync/models"
)

// transactionService applies case transactions to the case store. All
// mutations of one transaction, together with the cleanliness flag updates
// they imply, land in a single atomic commit.
type transactionService struct {
	cases store.CaseStore
	clean CleanlinessService

	logger *logger.Logger
}

// NewTransactionService constructs a [TransactionService].
func NewTransactionService(cases store.CaseStore, clean CleanlinessService, logger *logger.Logger) TransactionService {
	return &transactionService{
		cases:  cases,
		clean:  clean,
		logger: logger,
	}
}

// Apply implements [TransactionService].
func (s *transactionService) Apply(ctx context.Context, tx *models.CaseTransaction) (int64, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateTransaction(tx); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	before, err := s.loadBefore(ctx, tx)
	if err != nil {
		return 0, err
	}

	after, err := applyMutations(tx, before)
	if err != nil {
		return 0, err
	}

	flagUpdates, err := s.clean.TransactionFlagUpdates(ctx, tx.Domain, before, after)
	if err != nil {
		return 0, err
	}

	seq, err := s.cases.CommitCases(ctx, tx.Domain, after, flagUpdates)
	if err != nil {
		return 0, err
	}

	for _, ownerID := range touchedOwners(before, after) {
		s.clean.ScheduleRecompute(tx.Domain, ownerID)
	}

	log.Info().
		Str("func", "transactionService.Apply").
		Str("transaction_id", tx.TransactionID).
		Str("domain", tx.Domain).
		Int("cases", len(after)).
		Int("flags_dirtied", len(flagUpdates)).
		Int64("checkpoint", seq).
		Msg("case transaction applied")

	return seq, nil
}

// loadBefore fetches the pre-transaction state of every mutated case.
func (s *transactionService) loadBefore(ctx context.Context, tx *models.CaseTransaction) (map[string]*models.Case, error) {
	ids := make([]string, 0, len(tx.Mutations))
	seen := make(map[string]struct{}, len(tx.Mutations))
	for _, m := range tx.Mutations {
		if _, ok := seen[m.CaseID]; ok {
			continue
		}
		seen[m.CaseID] = struct{}{}
		ids = append(ids, m.CaseID)
	}

	existing, err := s.cases.GetCases(ctx, tx.Domain, ids)
	if err != nil {
		return nil, err
	}

	before := make(map[string]*models.Case, len(existing))
	for _, c := range existing {
		before[c.CaseID] = c
	}
	return before, nil
}

// applyMutations plays the transaction's mutations, in order, over working
// copies of the affected cases. A mutation that targets an unknown case
// without a create block is rejected; a create block on an existing case is
// applied as a plain update so replayed submissions stay idempotent.
func applyMutations(tx *models.CaseTransaction, before map[string]*models.Case) ([]*models.Case, error) {
	working := make(map[string]*models.Case, len(tx.Mutations))
	var order []string

	date := tx.Date.UTC()

	for _, m := range tx.Mutations {
		c, ok := working[m.CaseID]
		if !ok {
			if prior, exists := before[m.CaseID]; exists {
				cp := *prior
				cp.Properties = copyProperties(prior.Properties)
				cp.Actions = append([]models.CaseAction(nil), prior.Actions...)
				cp.Indices = append([]models.CaseIndex(nil), prior.Indices...)
				c = &cp
			} else {
				if m.Create == nil {
					return nil, fmt.Errorf("%w: mutation targets unknown case %s", ErrValidation, m.CaseID)
				}
				c = &models.Case{
					CaseID:   m.CaseID,
					Domain:   tx.Domain,
					OpenedBy: tx.UserID,
				}
			}
			working[m.CaseID] = c
			order = append(order, m.CaseID)
		}

		if m.Create != nil {
			c.Type = m.Create.CaseType
			c.Name = m.Create.CaseName
			c.OwnerID = m.Create.OwnerID
			c.Actions = append(c.Actions, models.CaseAction{
				Kind:   models.ActionCreate,
				Date:   date,
				UserID: tx.UserID,
			})
		}

		if len(m.Updates) > 0 || m.NewOwnerID != "" || m.NewType != "" || m.NewName != "" {
			if c.Properties == nil && len(m.Updates) > 0 {
				c.Properties = make(map[string]string, len(m.Updates))
			}
			for k, v := range m.Updates {
				c.Properties[k] = v
			}
			if m.NewOwnerID != "" {
				c.OwnerID = m.NewOwnerID
			}
			if m.NewType != "" {
				c.Type = m.NewType
			}
			if m.NewName != "" {
				c.Name = m.NewName
			}
			c.Actions = append(c.Actions, models.CaseAction{
				Kind:    models.ActionUpdate,
				Date:    date,
				UserID:  tx.UserID,
				Updates: copyProperties(m.Updates),
			})
		}

		if len(m.IndexChanges) > 0 {
			var applied []models.CaseIndex
			for _, ic := range m.IndexChanges {
				if ic.ReferencedID == "" {
					c.RemoveIndex(ic.Identifier)
					continue
				}
				idx := models.CaseIndex{
					Identifier:     ic.Identifier,
					ReferencedType: ic.ReferencedType,
					ReferencedID:   ic.ReferencedID,
					Relationship:   ic.Relationship,
				}
				c.SetIndex(idx)
				applied = append(applied, idx)
			}
			c.Actions = append(c.Actions, models.CaseAction{
				Kind:    models.ActionIndex,
				Date:    date,
				UserID:  tx.UserID,
				Indices: applied,
			})
		}

		if m.Close {
			c.Closed = true
			c.Actions = append(c.Actions, models.CaseAction{
				Kind:   models.ActionClose,
				Date:   date,
				UserID: tx.UserID,
			})
		}

		c.ModifiedBy = tx.UserID
		c.ServerModifiedOn = date
	}

	after := make([]*models.Case, 0, len(order))
	for _, id := range order {
		after = append(after, working[id])
	}
	return after, nil
}

// touchedOwners collects every owner whose footprint may have changed: the
// new owners of mutated cases plus any owner a case was transferred away
// from.
func touchedOwners(before map[string]*models.Case, after []*models.Case) []string {
	seen := make(map[string]struct{})
	var owners []string
	add := func(ownerID string) {
		if ownerID == "" {
			return
		}
		if _, ok := seen[ownerID]; ok {
			return
		}
		seen[ownerID] = struct{}{}
		owners = append(owners, ownerID)
	}

	for _, c := range after {
		add(c.OwnerID)
		if prior, ok := before[c.CaseID]; ok {
			add(prior.OwnerID)
		}
	}
	return owners
}

func copyProperties(props map[string]string) map[string]string {
	if props == nil {
		return nil
	}
	cp := make(map[string]string, len(props))
	for k, v := range props {
		cp[k] = v
	}
	return cp
}
