package api

import (
	"errors"
	"net/url"
	"time"

	models "SignalMix/internal/domain/models"
	"SignalMix/internal/service/metrics"
	"SignalMix/internal/usecase"
	xhttp "SignalMix/pkg/http"
	xlogger "SignalMix/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SignalsEchoHandler serves the normalization and combination endpoints.
type SignalsEchoHandler struct {
	logger     *xlogger.Logger
	normalizer *usecase.Normalizer
	combiner   *usecase.Combiner
}

func NewSignalsEchoHandler(logger *xlogger.Logger, normalizer *usecase.Normalizer, combiner *usecase.Combiner) *SignalsEchoHandler {
	metrics.Register()
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &SignalsEchoHandler{logger: logger, normalizer: normalizer, combiner: combiner}
}

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/signals")
	g.GET("/norm/:id", h.Norm)
	g.GET("/combine/", h.Combine)
	g.GET("/combine", h.Combine)
}

// Norm handles GET /signals/norm/:id.
func (h *SignalsEchoHandler) Norm(c echo.Context) error {
	const endpoint = "norm"
	start := time.Now()
	defer func() { metrics.SignalsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.NormRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		metrics.SignalsErrors.WithLabelValues(endpoint, "bad_request").Inc()
		return err
	}

	// echo hands path params over still percent-encoded
	id, err := url.PathUnescape(req.ID)
	if err != nil {
		metrics.SignalsErrors.WithLabelValues(endpoint, "bad_request").Inc()
		return xhttp.BadRequestError(models.MsgIDNotInteger).WithError(err)
	}

	t, err := h.normalizer.Normalize(c.Request().Context(), id)
	if err != nil {
		return h.fail(endpoint, err)
	}
	h.logger.Debug("signal normalized", xlogger.String("id", id), xlogger.Int("rows", t.Len()))
	return respondTable(c, t, req.Format)
}

// Combine handles GET /signals/combine/?signal=<id>,<weight>&...
func (h *SignalsEchoHandler) Combine(c echo.Context) error {
	const endpoint = "combine"
	start := time.Now()
	defer func() { metrics.SignalsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.CombineRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		metrics.SignalsErrors.WithLabelValues(endpoint, "bad_request").Inc()
		return err
	}

	t, err := h.combiner.Combine(c.Request().Context(), req.Signals, models.LoadMode(req.Mode))
	if err != nil {
		return h.fail(endpoint, err)
	}
	h.logger.Debug("signals combined", xlogger.Int("pairs", len(req.Signals)), xlogger.Int("rows", t.Len()))
	return respondTable(c, t, req.Format)
}

// fail maps validation failures to 400 {"message"}; anything else is returned
// unchanged and logged by the central error handler as a plain 500.
func (h *SignalsEchoHandler) fail(endpoint string, err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		metrics.SignalsErrors.WithLabelValues(endpoint, "bad_request").Inc()
		return xhttp.BadRequestError(verr.Message).WithError(err)
	}

	var uerr *models.UpstreamError
	kind := "internal"
	if errors.As(err, &uerr) {
		kind = "upstream"
	}
	metrics.SignalsErrors.WithLabelValues(endpoint, kind).Inc()
	return err
}

func respondTable(c echo.Context, t *models.Table, format string) error {
	if format == models.FormatRecords {
		return xhttp.SuccessResponse(c, t.Records())
	}
	return xhttp.SuccessResponse(c, t)
}
