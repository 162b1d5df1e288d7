package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-pii-labeler/internal/archive"
	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/handler"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/server"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/MKhiriev/go-pii-labeler/internal/session"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("pii-labeler-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("driver", cfg.Storage.DB.Driver).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	if err = storages.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	revocations, err := session.New(ctx, cfg.Session.RedisURL, cfg.Session.KeyPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating session store")
	}

	archiver, err := archive.New(ctx, cfg.Archive, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating upload archive")
	}

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, revocations, archiver, cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log,
		func() {
			if err := revocations.Close(); err != nil {
				log.Err(err).Msg("error closing session store")
			}
		},
		func() {
			if err := storages.Close(); err != nil {
				log.Err(err).Msg("error closing storages")
			}
		},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

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
