// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/mock"
	"github.com/tkarimov/casesync/internal/service"
	"github.com/tkarimov/casesync/models"
)

func TestRecomputeWorker_DrainsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	clean := mock.NewMockCleanlinessService(ctrl)

	var wg sync.WaitGroup
	wg.Add(2)
	clean.EXPECT().Recompute(gomock.Any(), "test-domain", gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (*models.CleanlinessFlag, error) {
			wg.Done()
			return &models.CleanlinessFlag{IsClean: true}, nil
		}).Times(2)

	queue := make(chan service.RecomputeRequest, 4)
	queue <- service.RecomputeRequest{Domain: "test-domain", OwnerID: "owner-x"}
	queue <- service.RecomputeRequest{Domain: "test-domain", OwnerID: "owner-y"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewRecomputeWorker(ctx, clean, queue, logger.Nop()).Run()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("worker did not drain the queue in time")
	}
}

func TestRecomputeWorker_FailureIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	clean := mock.NewMockCleanlinessService(ctrl)

	processed := make(chan string, 2)
	clean.EXPECT().Recompute(gomock.Any(), "test-domain", "owner-x").
		DoAndReturn(func(context.Context, string, string) (*models.CleanlinessFlag, error) {
			processed <- "owner-x"
			return nil, errors.New("storage unavailable")
		})
	clean.EXPECT().Recompute(gomock.Any(), "test-domain", "owner-y").
		DoAndReturn(func(context.Context, string, string) (*models.CleanlinessFlag, error) {
			processed <- "owner-y"
			return &models.CleanlinessFlag{IsClean: true}, nil
		})

	queue := make(chan service.RecomputeRequest, 4)
	queue <- service.RecomputeRequest{Domain: "test-domain", OwnerID: "owner-x"}
	queue <- service.RecomputeRequest{Domain: "test-domain", OwnerID: "owner-y"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewRecomputeWorker(ctx, clean, queue, logger.Nop()).Run()

	// A failed recompute must not stall the drain loop.
	for i := 0; i < 2; i++ {
		select {
		case <-processed:
		case <-time.After(3 * time.Second):
			t.Fatal("worker stalled after a failed recompute")
		}
	}
}

func TestRecomputeWorker_StopsOnClosedQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	clean := mock.NewMockCleanlinessService(ctrl)

	queue := make(chan service.RecomputeRequest)
	close(queue)

	w := NewRecomputeWorker(context.Background(), clean, queue, logger.Nop())

	done := make(chan struct{})
	go func() {
		w.drain()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on closed queue")
	}
}

func TestRecomputeWorker_StopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	clean := mock.NewMockCleanlinessService(ctrl)

	queue := make(chan service.RecomputeRequest)
	ctx, cancel := context.WithCancel(context.Background())

	w := NewRecomputeWorker(ctx, clean, queue, logger.Nop())

	done := make(chan struct{})
	go func() {
		w.drain()
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}
