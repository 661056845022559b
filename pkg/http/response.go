package http

import (
	"errors"
	"fmt"
	"net/http"

	"SignalMix/pkg/http/middleware"
	applogger "SignalMix/pkg/logger"

	"github.com/labstack/echo/v4"
)

const internalErrorBody = "Internal Server Error"

// SuccessResponse writes data as a 200 JSON body.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// MessageErrorResponse writes {"message": msg} with the given status.
func MessageErrorResponse(c echo.Context, status int, msg string) error {
	return c.JSON(status, MessageResponse{Message: msg})
}

// InternalServerErrorResponse writes a plain-text 500 with no structured body.
func InternalServerErrorResponse(c echo.Context) error {
	return c.String(http.StatusInternalServerError, internalErrorBody)
}

// ErrorHandler maps errors returned by handlers to responses.
// AppErrors below 500 and echo routing errors become {"message": ...};
// everything else is logged and answered with a plain 500.
func ErrorHandler(l *applogger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			appErr *AppError
			he     *echo.HTTPError
			werr   error
		)
		switch {
		case errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError:
			werr = MessageErrorResponse(c, appErr.Status, appErr.Message)
		case errors.As(err, &he) && he.Code < http.StatusInternalServerError:
			werr = MessageErrorResponse(c, he.Code, fmt.Sprintf("%v", he.Message))
		default:
			l.Error("http request error",
				applogger.String("method", c.Request().Method),
				applogger.String("uri", c.Request().RequestURI),
				applogger.String("request_id", middleware.GetRequestID(c)),
				applogger.Error(err),
			)
			werr = InternalServerErrorResponse(c)
		}
		if werr != nil {
			l.Warn("http error response write failed", applogger.Error(werr))
		}
	}
}
