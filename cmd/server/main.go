package main

import (
	"context"
	"fmt"

	"github.com/tmaksat/newsauth/internal/config"
	handlerhttp "github.com/tmaksat/newsauth/internal/handler/http"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/notify"
	"github.com/tmaksat/newsauth/internal/rate"
	"github.com/tmaksat/newsauth/internal/server"
	"github.com/tmaksat/newsauth/internal/service"
	"github.com/tmaksat/newsauth/internal/store"
	"github.com/tmaksat/newsauth/internal/token"
	"github.com/tmaksat/newsauth/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	handlerhttp.SetBuildInfo(handlerhttp.BuildInfo{
		Version: buildVersion,
		Date:    buildDate,
		Commit:  buildCommit,
	})

	log := logger.NewLogger("newsauth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to postgres")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	repos := store.NewRepositories(db, log)
	issuer := token.NewIssuer(cfg.Auth)
	notifier := notify.New(cfg.Notifier, log)
	services := service.NewServices(repos, issuer, notifier, cfg.Auth, log)
	limiter := rate.NewLimiter(cfg.RateLimit)
	handlers := handlerhttp.NewHandler(services, limiter, log)

	sweeper := workers.NewSweeper(repos, limiter, cfg.Workers, log)
	go workers.NewWorkers(sweeper).Run(ctx)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
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
