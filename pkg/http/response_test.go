package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	applogger "SignalMix/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
		json   bool
	}{
		{"bad request", BadRequestError("id must be an integer"), http.StatusBadRequest, `{"message":"id must be an integer"}`, true},
		{"wrapped bad request", BadRequestError("weight must be a float").WithError(errors.New("strconv")), http.StatusBadRequest, `{"message":"weight must be a float"}`, true},
		{"not found route", echo.ErrNotFound, http.StatusNotFound, `{"message":"Not Found"}`, true},
		{"internal app error", InternalError("db down"), http.StatusInternalServerError, "Internal Server Error", false},
		{"plain error", errors.New("upstream signal 1: timeout"), http.StatusInternalServerError, "Internal Server Error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(applogger.Nop())(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			if tt.json {
				assert.JSONEq(t, tt.body, rec.Body.String())
			} else {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := BadRequestErrorf("id %s", "bad").WithError(errors.New("cause"))
	assert.Equal(t, "id bad: cause", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.EqualError(t, errors.Unwrap(err), "cause")
}
