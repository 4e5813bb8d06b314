package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/models"
)

// flagRepository is the PostgreSQL-backed implementation of [FlagStore].
// All writes go through INSERT ... ON CONFLICT upserts so that concurrent
// flag updates from parallel submissions serialize on the (domain, owner)
// row instead of racing.
type flagRepository struct {
	*DB
	logger *logger.Logger
}

// NewFlagRepository constructs a [FlagStore] backed by the provided database
// connection and logger.
func NewFlagRepository(db *DB, logger *logger.Logger) FlagStore {
	return &flagRepository{
		DB:     db,
		logger: logger,
	}
}

// Get returns the flag for (domain, owner).
func (r *flagRepository) Get(ctx context.Context, domain, ownerID string) (*models.CleanlinessFlag, error) {
	log := logger.FromContext(ctx)

	var flag models.CleanlinessFlag
	err := r.DB.QueryRowContext(ctx, getCleanlinessFlag, domain, ownerID).Scan(
		&flag.Domain,
		&flag.OwnerID,
		&flag.IsClean,
		&flag.HintCaseID,
		&flag.LastComputed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFlagNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "flagRepository.Get").
			Str("domain", domain).
			Str("owner_id", ownerID).
			Msg("failed to scan cleanliness flag row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &flag, nil
}

// Upsert writes the flag atomically.
func (r *flagRepository) Upsert(ctx context.Context, flag *models.CleanlinessFlag) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, upsertCleanlinessFlag,
		flag.Domain, flag.OwnerID, flag.IsClean, flag.HintCaseID, flag.LastComputed,
	)
	if err != nil {
		log.Err(err).
			Str("func", "flagRepository.Upsert").
			Str("domain", flag.Domain).
			Str("owner_id", flag.OwnerID).
			Msg("failed to upsert cleanliness flag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// MarkDirty flips the flag to dirty with the given hint, creating the row
// if absent.
func (r *flagRepository) MarkDirty(ctx context.Context, domain, ownerID, hintCaseID string) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, markFlagDirty, domain, ownerID, hintCaseID, time.Now().UTC())
	if err != nil {
		log.Err(err).
			Str("func", "flagRepository.MarkDirty").
			Str("domain", domain).
			Str("owner_id", ownerID).
			Str("hint_case_id", hintCaseID).
			Msg("failed to mark cleanliness flag dirty")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
