package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/models"
)

// syncLogRepository is the PostgreSQL-backed implementation of
// [SyncLogStore]. Owned and dependent case states are stored as JSONB
// documents; the state hash is computed by the service layer and persisted
// as-is.
type syncLogRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncLogRepository constructs a [SyncLogStore] backed by the provided
// database connection and logger.
func NewSyncLogRepository(db *DB, logger *logger.Logger) SyncLogStore {
	return &syncLogRepository{
		DB:     db,
		logger: logger,
	}
}

// Create persists a new sync log.
func (r *syncLogRepository) Create(ctx context.Context, syncLog *models.SyncLog) error {
	log := logger.FromContext(ctx)

	owned, err := json.Marshal(syncLog.OwnedCases)
	if err != nil {
		return fmt.Errorf("encoding owned case states: %w", err)
	}
	dependent, err := json.Marshal(syncLog.DependentCases)
	if err != nil {
		return fmt.Errorf("encoding dependent case states: %w", err)
	}

	result, err := r.DB.ExecContext(ctx, createSyncLog,
		syncLog.ID, syncLog.UserID, syncLog.Domain, syncLog.Sequence, syncLog.Date,
		syncLog.PreviousLogID, owned, dependent, syncLog.StateHash,
	)
	if isUniqueViolation(err) {
		// Retried insert of the same log (e.g. a replayed request); the
		// row is already there.
		return nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.Create").
			Str("sync_log_id", syncLog.ID).
			Str("user_id", syncLog.UserID).
			Msg("failed to insert sync log")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrSyncLogNotSaved
	}

	return nil
}

// Get returns a log by its restore token.
func (r *syncLogRepository) Get(ctx context.Context, id string) (*models.SyncLog, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getSyncLog, id)
	syncLog, err := scanSyncLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSyncLogNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.Get").
			Str("sync_log_id", id).
			Msg("failed to scan sync log row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return syncLog, nil
}

// LastForUser returns the most recently created log for a user, or
// (nil, nil) when the user has never synced.
func (r *syncLogRepository) LastForUser(ctx context.Context, userID string) (*models.SyncLog, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, lastSyncLogForUser, userID)
	syncLog, err := scanSyncLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.LastForUser").
			Str("user_id", userID).
			Msg("failed to scan sync log row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return syncLog, nil
}

// Update rewrites the mutable portion of an existing log (footprint and
// state hash). Only the archive shrink path calls this.
func (r *syncLogRepository) Update(ctx context.Context, syncLog *models.SyncLog) error {
	log := logger.FromContext(ctx)

	owned, err := json.Marshal(syncLog.OwnedCases)
	if err != nil {
		return fmt.Errorf("encoding owned case states: %w", err)
	}
	dependent, err := json.Marshal(syncLog.DependentCases)
	if err != nil {
		return fmt.Errorf("encoding dependent case states: %w", err)
	}

	result, err := r.DB.ExecContext(ctx, updateSyncLog, syncLog.ID, owned, dependent, syncLog.StateHash)
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.Update").
			Str("sync_log_id", syncLog.ID).
			Msg("failed to update sync log")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrSyncLogNotFound
	}

	return nil
}

func scanSyncLog(row rowScanner) (*models.SyncLog, error) {
	var l models.SyncLog
	var owned, dependent []byte

	if err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.Domain,
		&l.Sequence,
		&l.Date,
		&l.PreviousLogID,
		&owned,
		&dependent,
		&l.StateHash,
	); err != nil {
		return nil, err
	}

	if len(owned) > 0 {
		if err := json.Unmarshal(owned, &l.OwnedCases); err != nil {
			return nil, fmt.Errorf("decoding owned case states: %w", err)
		}
	}
	if len(dependent) > 0 {
		if err := json.Unmarshal(dependent, &l.DependentCases); err != nil {
			return nil, fmt.Errorf("decoding dependent case states: %w", err)
		}
	}

	return &l, nil
}
