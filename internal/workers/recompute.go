// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/service"
)

// RecomputeWorker drains the queue of sampled cleanliness recomputes. Each
// request rebuilds one (domain, owner) flag; failures are logged and
// dropped, since a later sample of the same owner will retry the rebuild.
type RecomputeWorker struct {
	ctx   context.Context
	clean service.CleanlinessService
	queue <-chan service.RecomputeRequest

	logger *logger.Logger
}

// NewRecomputeWorker constructs a worker draining queue until ctx is
// cancelled or the queue is closed.
func NewRecomputeWorker(ctx context.Context, clean service.CleanlinessService, queue <-chan service.RecomputeRequest, logger *logger.Logger) *RecomputeWorker {
	return &RecomputeWorker{
		ctx:    ctx,
		clean:  clean,
		queue:  queue,
		logger: logger,
	}
}

// Run starts the drain loop in its own goroutine and returns immediately.
func (w *RecomputeWorker) Run() {
	go w.drain()
}

func (w *RecomputeWorker) drain() {
	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info().
				Str("func", "RecomputeWorker.drain").
				Msg("recompute worker stopping")
			return
		case req, ok := <-w.queue:
			if !ok {
				return
			}
			w.process(req)
		}
	}
}

func (w *RecomputeWorker) process(req service.RecomputeRequest) {
	flag, err := w.clean.Recompute(w.ctx, req.Domain, req.OwnerID)
	if err != nil {
		w.logger.Err(err).
			Str("func", "RecomputeWorker.process").
			Str("domain", req.Domain).
			Str("owner_id", req.OwnerID).
			Msg("background flag recompute failed")
		return
	}

	w.logger.Debug().
		Str("func", "RecomputeWorker.process").
		Str("domain", req.Domain).
		Str("owner_id", req.OwnerID).
		Bool("is_clean", flag.IsClean).
		Msg("background flag recompute finished")
}
