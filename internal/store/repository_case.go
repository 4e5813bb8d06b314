package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/models"
)

// caseRepository is the PostgreSQL-backed implementation of [CaseStore].
// Case bodies live in the "cases" table with properties, actions and index
// edges stored as JSONB; index edges are additionally flattened into the
// "case_indices" table to make reverse lookups cheap.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (domain, case_id, owner count, etc.).
type caseRepository struct {
	*DB
	logger *logger.Logger
}

// NewCaseRepository constructs a [CaseStore] backed by the provided database
// connection and logger.
func NewCaseRepository(db *DB, logger *logger.Logger) CaseStore {
	return &caseRepository{
		DB:     db,
		logger: logger,
	}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// caseColumns is the fixed column list shared by all case SELECTs.
var caseColumns = []string{
	"domain", "case_id", "type", "name", "owner_id", "opened_by", "modified_by",
	"properties", "closed", "deleted", "server_modified_on", "sequence", "actions", "indices",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*models.Case, error) {
	var c models.Case
	var properties, actions, indices []byte

	if err := row.Scan(
		&c.Domain,
		&c.CaseID,
		&c.Type,
		&c.Name,
		&c.OwnerID,
		&c.OpenedBy,
		&c.ModifiedBy,
		&properties,
		&c.Closed,
		&c.Deleted,
		&c.ServerModifiedOn,
		&c.Sequence,
		&actions,
		&indices,
	); err != nil {
		return nil, err
	}

	if len(properties) > 0 {
		if err := json.Unmarshal(properties, &c.Properties); err != nil {
			return nil, fmt.Errorf("decoding case properties: %w", err)
		}
	}
	if len(actions) > 0 {
		if err := json.Unmarshal(actions, &c.Actions); err != nil {
			return nil, fmt.Errorf("decoding case actions: %w", err)
		}
	}
	if len(indices) > 0 {
		if err := json.Unmarshal(indices, &c.Indices); err != nil {
			return nil, fmt.Errorf("decoding case indices: %w", err)
		}
	}

	return &c, nil
}

// GetCase retrieves one case by ID, including soft-deleted cases.
func (r *caseRepository) GetCase(ctx context.Context, domain, caseID string) (*models.Case, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getCase, domain, caseID)
	c, err := scanCase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "caseRepository.GetCase").
			Str("domain", domain).
			Str("case_id", caseID).
			Msg("failed to scan case row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return c, nil
}

// GetCases retrieves the non-deleted cases with the given IDs. Missing or
// soft-deleted IDs are silently absent from the result.
func (r *caseRepository) GetCases(ctx context.Context, domain string, caseIDs []string) ([]*models.Case, error) {
	if len(caseIDs) == 0 {
		return nil, nil
	}

	query, args, err := psql.Select(caseColumns...).
		From("cases").
		Where(sq.Eq{"domain": domain, "case_id": caseIDs}).
		Where(sq.Eq{"deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryCases(ctx, "caseRepository.GetCases", query, args...)
}

// GetCaseIDsOwnedBy returns the IDs of all non-deleted cases whose owner
// is one of ownerIDs. Closed cases are included: devices must learn about
// closes.
func (r *caseRepository) GetCaseIDsOwnedBy(ctx context.Context, domain string, ownerIDs []string) ([]string, error) {
	log := logger.FromContext(ctx)

	if len(ownerIDs) == 0 {
		return nil, nil
	}

	query, args, err := psql.Select("case_id").
		From("cases").
		Where(sq.Eq{"domain": domain, "owner_id": ownerIDs, "deleted": false}).
		OrderBy("case_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "caseRepository.GetCaseIDsOwnedBy").
			Str("domain", domain).
			Int("owner count", len(ownerIDs)).
			Msg("failed to execute owned-case query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0, 50)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}

// GetCasesOwnedBy returns all non-deleted cases whose owner is one of
// ownerIDs.
func (r *caseRepository) GetCasesOwnedBy(ctx context.Context, domain string, ownerIDs []string) ([]*models.Case, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}

	query, args, err := psql.Select(caseColumns...).
		From("cases").
		Where(sq.Eq{"domain": domain, "owner_id": ownerIDs, "deleted": false}).
		OrderBy("case_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryCases(ctx, "caseRepository.GetCasesOwnedBy", query, args...)
}

// GetCasesIndexing returns every non-deleted case carrying an index edge
// that references targetCaseID.
func (r *caseRepository) GetCasesIndexing(ctx context.Context, domain, targetCaseID string) ([]*models.Case, error) {
	return r.queryCases(ctx, "caseRepository.GetCasesIndexing", getCasesIndexing, domain, targetCaseID)
}

func (r *caseRepository) queryCases(ctx context.Context, caller, query string, args ...any) ([]*models.Case, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", caller).Msg("failed to execute case query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cases := make([]*models.Case, 0, 50)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			log.Err(err).Str("func", caller).Msg("failed to scan case row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", caller).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return cases, nil
}

// CommitCases writes the given case states, rewrites their flattened index
// rows, applies the cleanliness flag updates and advances the change stream,
// all inside one transaction. The returned sequence is the new checkpoint
// for the domain.
func (r *caseRepository) CommitCases(ctx context.Context, domain string, cases []*models.Case, flags []FlagUpdate) (int64, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "caseRepository.CommitCases").
			Str("domain", domain).
			Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// The change stream advances first so every case row written below can
	// carry the commit's sequence; incremental syncs diff on it.
	var seq int64
	if err := tx.QueryRowContext(ctx, advanceChangeStream, domain).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for _, c := range cases {
		properties, err := json.Marshal(c.Properties)
		if err != nil {
			return 0, fmt.Errorf("encoding case properties: %w", err)
		}
		actions, err := json.Marshal(c.Actions)
		if err != nil {
			return 0, fmt.Errorf("encoding case actions: %w", err)
		}
		indices, err := json.Marshal(c.Indices)
		if err != nil {
			return 0, fmt.Errorf("encoding case indices: %w", err)
		}

		if _, err := tx.ExecContext(ctx, upsertCase,
			domain, c.CaseID, c.Type, c.Name, c.OwnerID, c.OpenedBy, c.ModifiedBy,
			properties, c.Closed, c.Deleted, c.ServerModifiedOn, seq, actions, indices,
		); err != nil {
			log.Err(err).
				Str("func", "caseRepository.CommitCases").
				Str("domain", domain).
				Str("case_id", c.CaseID).
				Msg("failed to upsert case")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if _, err := tx.ExecContext(ctx, deleteCaseIndices, domain, c.CaseID); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		for _, idx := range c.Indices {
			if _, err := tx.ExecContext(ctx, insertCaseIndex,
				domain, c.CaseID, idx.Identifier, idx.ReferencedType, idx.ReferencedID, string(idx.Relationship),
			); err != nil {
				return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
	}

	// Flag updates must land in the same commit as the case mutations that
	// caused them.
	now := time.Now().UTC()
	for _, f := range flags {
		if _, err := tx.ExecContext(ctx, markFlagDirty, f.Domain, f.OwnerID, f.HintCaseID, now); err != nil {
			log.Err(err).
				Str("func", "caseRepository.CommitCases").
				Str("domain", f.Domain).
				Str("owner_id", f.OwnerID).
				Msg("failed to mark cleanliness flag dirty")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "caseRepository.CommitCases").
			Str("domain", domain).
			Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return seq, nil
}

// Checkpoint returns the current change-stream position for a domain.
func (r *caseRepository) Checkpoint(ctx context.Context, domain string) (int64, error) {
	var seq int64
	if err := r.DB.QueryRowContext(ctx, getCheckpoint, domain).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return seq, nil
}
