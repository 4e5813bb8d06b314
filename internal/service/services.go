package service

import (
	"github.com/tkarimov/casesync/internal/config"
	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/store"
	"github.com/tkarimov/casesync/internal/toggles"
)

// Services bundles every service the transport layer depends on.
type Services struct {
	Restore      RestoreService
	Transactions TransactionService
	Cleanliness  CleanlinessService
	SyncLogs     SyncLogService
	AppInfo      AppInfoService
}

// NewServices wires the full service graph on top of the given storages.
// queue carries sampled cleanliness recomputes to the background worker and
// may be nil to disable sampling.
func NewServices(
	storages *store.Storages,
	cfg *config.StructuredConfig,
	reg *toggles.Registry,
	queue chan<- RecomputeRequest,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	footprint := NewFootprintCalculator(storages.Cases, cfg.Cleanliness, logger)
	cleanliness := NewCleanlinessService(storages.Cases, storages.Flags, footprint, reg, cfg.Cleanliness, queue, logger)

	return &Services{
		Restore:      NewRestoreService(storages, cleanliness, footprint, reg, cfg.Restore, logger),
		Transactions: NewTransactionService(storages.Cases, cleanliness, logger),
		Cleanliness:  cleanliness,
		SyncLogs:     NewSyncLogService(storages.SyncLogs, storages.Payloads, logger),
		AppInfo:      appInfo,
	}, nil
}
