package di

import (
	"fmt"
	"sync"

	"SignalMix/internal/domain/models"
	"SignalMix/internal/domain/repository"
	"SignalMix/internal/handler/api"
	"SignalMix/internal/service/upstream"
	"SignalMix/internal/usecase"
	"SignalMix/pkg/config"
	xhttp "SignalMix/pkg/http"
	applogger "SignalMix/pkg/logger"
	"SignalMix/pkg/metrics"
	"SignalMix/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline bundles the signal use cases for callers that do not need HTTP.
type Pipeline struct {
	Normalizer *usecase.Normalizer
	Combiner   *usecase.Combiner
}

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

var (
	recorderOnce sync.Once
	recorder     *metrics.Recorder
)

// ProvideMetrics returns the process-wide Prometheus recorder registered on
// the default registry.
func ProvideMetrics() repository.Metrics {
	recorderOnce.Do(func() {
		recorder = metrics.New(prometheus.DefaultRegisterer)
	})
	return recorder
}

// ProvideHTTPClient creates the outbound HTTP client; its timeout bounds each upstream attempt.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.Upstream.Timeout),
		xhttp.WithUserAgent(cfg.Upstream.UserAgent),
	)
}

// ProvideSignalSource creates the upstream signal client.
func ProvideSignalSource(cfg *config.Config, hc *xhttp.Client, m repository.Metrics, l *applogger.Logger) repository.SignalSource {
	return upstream.New(cfg.Upstream.BaseURL,
		upstream.WithHTTPClient(hc),
		upstream.WithRetry(cfg.Upstream.Attempts, cfg.Upstream.Backoff),
		upstream.WithMetrics(m),
		upstream.WithLogger(l),
	)
}

func ProvideSignalLoader(src repository.SignalSource) *usecase.SignalLoader {
	return usecase.NewSignalLoader(src)
}

func ProvideNormalizer(loader *usecase.SignalLoader) *usecase.Normalizer {
	return usecase.NewNormalizer(loader)
}

func ProvideCombiner(cfg *config.Config, loader *usecase.SignalLoader) *usecase.Combiner {
	return usecase.NewCombiner(loader, models.LoadMode(cfg.Combine.LoadMode))
}

func ProvidePipeline(n *usecase.Normalizer, c *usecase.Combiner) *Pipeline {
	return &Pipeline{Normalizer: n, Combiner: c}
}

// ProvideSignalsHandler creates the Echo handler for the signal endpoints.
func ProvideSignalsHandler(l *applogger.Logger, n *usecase.Normalizer, c *usecase.Combiner) xhttp.Handler {
	return api.NewSignalsEchoHandler(l, n, c)
}

// ProvideHTTPServer creates the Echo server from config.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, l, srv)
}
