package workers

import (
	"context"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers of the service.
func NewWorkers(ctx context.Context, services *service.Services, queue <-chan service.RecomputeRequest, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewRecomputeWorker(ctx, services.Cleanliness, queue, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
