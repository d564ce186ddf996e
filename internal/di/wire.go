//go:build wireinject
// +build wireinject

package di

import (
	"marketsim/pkg/config"
	"marketsim/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Market simulation core
		ProvideRegistry,
		ProvidePriceModel,
		ProvideEngine,
		ProvideHistorySource,
		ProvideCache,

		// Use cases
		ProvideMarketDataUseCase,
		ProvideChartUseCase,

		// Transport
		ProvideAPIHandler,
		ProvideStreamHandler,
		ProvideHandlers,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
