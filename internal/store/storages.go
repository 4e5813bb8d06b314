package store

import (
	"context"
	"fmt"

	"github.com/tkarimov/casesync/internal/config"
	"github.com/tkarimov/casesync/internal/logger"
)

// Storages aggregates every persistence backend the service layer depends
// on.
type Storages struct {
	Cases    CaseStore
	SyncLogs SyncLogStore
	Flags    FlagStore
	Payloads PayloadCache
}

// NewStorages wires the PostgreSQL repositories and the SQLite payload
// cache from configuration, running migrations along the way.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	payloads, err := NewSQLitePayloadCache(cfg.Cache.Path, log)
	if err != nil {
		return nil, fmt.Errorf("error opening payload cache: %w", err)
	}

	return &Storages{
		Cases:    NewCaseRepository(db, log),
		SyncLogs: NewSyncLogRepository(db, log),
		Flags:    NewFlagRepository(db, log),
		Payloads: payloads,
	}, nil
}

// NewMemoryStorages wires the all-in-memory backends: the case index,
// sync-log and flag stores, and a process-local payload cache. Used by
// tests and embedded deployments.
func NewMemoryStorages() *Storages {
	cases := NewMemoryCaseStore()
	flags := NewMemoryFlagStore()
	cases.BindFlagStore(flags)

	return &Storages{
		Cases:    cases,
		SyncLogs: NewMemorySyncLogStore(),
		Flags:    flags,
		Payloads: NewMemoryPayloadCache(),
	}
}
