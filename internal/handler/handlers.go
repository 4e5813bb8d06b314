// Package handler aggregates the transport handlers of the sync service.
package handler

import (
	"github.com/tkarimov/casesync/internal/config"
	"github.com/tkarimov/casesync/internal/handler/http"
	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg.App, logger),
	}, nil
}
