package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pii-labeler/internal/client"
	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewConsoleLogger("labelerctl", os.Stderr)

	cfg, err := config.GetToolConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if buildVersion == "" {
		buildVersion = "N/A"
	}
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	app := client.NewApp(cfg, build, os.Stdout, log)
	if err = app.Run(ctx, os.Args[1:]); err != nil {
		stop()
		log.Fatal().Err(err).Msg("command failed")
	}
}
