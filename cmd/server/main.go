package main

import (
	"context"
	"fmt"

	"github.com/tkarimov/casesync/internal/config"
	"github.com/tkarimov/casesync/internal/handler"
	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/server"
	"github.com/tkarimov/casesync/internal/service"
	"github.com/tkarimov/casesync/internal/store"
	"github.com/tkarimov/casesync/internal/toggles"
	"github.com/tkarimov/casesync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("casesync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Payloads.Close()

	reg, err := toggles.NewRegistry(cfg.Cleanliness.TogglesPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading feature toggles")
	}
	defer reg.Close()

	queue := make(chan service.RecomputeRequest, cfg.Workers.RecomputeQueueSize)

	services, err := service.NewServices(storages, cfg, reg, queue, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(ctx, services, queue, log).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
