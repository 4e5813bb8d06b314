package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 database/sql driver

	"github.com/tkarimov/casesync/internal/logger"
)

// sqlitePayloadCache is the [PayloadCache] implementation backing the
// response cache with a local SQLite file. Payloads are content-addressed by
// (user, state hash, protocol version) and carry the change-stream
// checkpoint they were computed at, so callers can refuse entries that
// predate a later commit.
type sqlitePayloadCache struct {
	db     *sql.DB
	logger *logger.Logger
}

const createPayloadCacheSchema = `CREATE TABLE IF NOT EXISTS restore_payloads (
	user_id    TEXT    NOT NULL,
	state_hash TEXT    NOT NULL,
	version    TEXT    NOT NULL,
	checkpoint INTEGER NOT NULL,
	payload    BLOB    NOT NULL,
	cached_at  TIMESTAMP NOT NULL,
	PRIMARY KEY (user_id, state_hash, version)
);`

// NewSQLitePayloadCache opens (and creates, if needed) the payload cache at
// path. ":memory:" keeps the cache process-local, which is what tests use.
func NewSQLitePayloadCache(path string, log *logger.Logger) (PayloadCache, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening payload cache: %w", err)
	}

	if _, err := db.Exec(createPayloadCacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating payload cache schema: %w", err)
	}

	log.Info().Str("path", path).Msg("payload cache ready")

	return &sqlitePayloadCache{db: db, logger: log}, nil
}

// Get returns the cached payload and its checkpoint for
// (user, stateHash, version), if any.
func (c *sqlitePayloadCache) Get(ctx context.Context, userID, stateHash, version string) ([]byte, int64, bool, error) {
	var payload []byte
	var checkpoint int64
	err := c.db.QueryRowContext(ctx,
		`SELECT payload, checkpoint FROM restore_payloads WHERE user_id = ? AND state_hash = ? AND version = ?;`,
		userID, stateHash, version,
	).Scan(&payload, &checkpoint)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return payload, checkpoint, true, nil
}

// Set stores the payload for (user, stateHash, version). Idempotent:
// rewriting the same key replaces the bytes, which is harmless because the
// key is content-addressed.
func (c *sqlitePayloadCache) Set(ctx context.Context, userID, stateHash, version string, checkpoint int64, payload []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO restore_payloads (user_id, state_hash, version, checkpoint, payload, cached_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, state_hash, version) DO UPDATE SET
			checkpoint = excluded.checkpoint,
			payload = excluded.payload,
			cached_at = excluded.cached_at;`,
		userID, stateHash, version, checkpoint, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// InvalidateAll drops every cached version for (user, stateHash).
func (c *sqlitePayloadCache) InvalidateAll(ctx context.Context, userID, stateHash string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM restore_payloads WHERE user_id = ? AND state_hash = ?;`,
		userID, stateHash,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (c *sqlitePayloadCache) Close() error {
	return c.db.Close()
}
