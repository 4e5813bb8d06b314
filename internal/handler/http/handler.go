package http

import (
	"github.com/tkarimov/casesync/internal/config"
	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/service"
)

type Handler struct {
	services *service.Services
	app      config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		app:      app,
		logger:   logger,
	}
}
