//go:build wireinject
// +build wireinject

package di

import (
	"SignalMix/pkg/config"
	"SignalMix/pkg/server"

	"github.com/google/wire"
)

var signalSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideHTTPClient,
	ProvideSignalSource,
	ProvideSignalLoader,
	ProvideNormalizer,
	ProvideCombiner,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		signalSet,

		// HTTP surface
		ProvideSignalsHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializePipeline wires the use cases without the HTTP server.
func InitializePipeline(cfg *config.Config) (*Pipeline, error) {
	wire.Build(signalSet, ProvidePipeline)
	return &Pipeline{}, nil
}
