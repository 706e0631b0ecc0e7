//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"archivebot/internal"
	"archivebot/internal/archiver"
	"archivebot/internal/bot"
	"archivebot/internal/controllers"
	"archivebot/internal/providers"
	"archivebot/internal/services"
	"archivebot/internal/structures"
	"archivebot/internal/wiki"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		wiki.NewTimeStripper,
		wiki.NewClient,
		wire.Bind(new(archiver.PageClient), new(*wiki.Client)),

		bot.NewZstdCompressor,
		services.NewArchiveService,
		bot.NewFileManager,
		bot.NewScheduler,
		controllers.NewBotController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitRunner(cfg *structures.CliFlags) (*internal.Runner, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		wiki.NewTimeStripper,
		wiki.NewClient,
		wire.Bind(new(archiver.PageClient), new(*wiki.Client)),

		bot.NewZstdCompressor,
		services.NewArchiveService,
		bot.NewFileManager,
		bot.NewScheduler,
		internal.NewRunner,
	)

	return nil, nil
}
