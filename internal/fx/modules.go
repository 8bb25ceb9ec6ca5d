package fx

import (
	"archery-results/internal/api"
	"archery-results/internal/config"
	"archery-results/internal/database"
	"archery-results/internal/logger"
	"archery-results/internal/metrics"
	"archery-results/internal/repository"
	"archery-results/internal/server"
	"archery-results/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Invoke(logger.ApplyLevel),
	fx.Provide(database.New),
	fx.Provide(metrics.New),
	// cache
	fx.Provide(
		fx.Annotate(repository.NewCacheRepository, fx.As(new(service.CacheStore))),
	),
	// upstream api client
	fx.Provide(
		fx.Annotate(api.NewResultsClient, fx.As(new(service.Upstream)), fx.As(new(service.URLBuilder))),
	),
	// svc
	fx.Provide(service.NewFetcher),
	fx.Provide(service.NewResultsService),
	// server
	fx.Provide(
		fx.Annotate(server.NewResultsServer, fx.From(new(*service.ResultsService))),
	),
)
