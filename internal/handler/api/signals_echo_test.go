package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"SignalMix/internal/domain/models"
	"SignalMix/internal/usecase"
	xhttp "SignalMix/pkg/http"
	xlogger "SignalMix/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	tables map[models.SignalID]*models.Table
	calls  int
}

func (s *stubSource) Fetch(_ context.Context, id models.SignalID) (*models.Table, error) {
	s.calls++
	t, ok := s.tables[id]
	if !ok {
		return nil, &models.UpstreamError{SignalID: id, Status: http.StatusBadGateway, Err: errors.New("upstream down")}
	}
	return t, nil
}

func newTestServer(t *testing.T, src *stubSource, mode models.LoadMode) *xhttp.Server {
	t.Helper()
	loader := usecase.NewSignalLoader(src)
	h := NewSignalsEchoHandler(xlogger.Nop(), usecase.NewNormalizer(loader), usecase.NewCombiner(loader, mode))
	return xhttp.NewServer(h, xhttp.WithLogger(xlogger.Nop()), xhttp.WithMetricsPath(""))
}

func get(srv *xhttp.Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

func fixture() *stubSource {
	s := &stubSource{tables: make(map[models.SignalID]*models.Table)}

	a := models.NewTable()
	a.Set("2020-01-01", "value", 1)
	a.Set("2020-01-02", "value", 2)
	a.Set("2020-01-03", "value", 3)
	s.tables[1] = a

	b := models.NewTable()
	b.Set("2020-01-01", "value", 3)
	b.Set("2020-01-02", "value", 4)
	b.Set("2020-01-03", "value", 5)
	s.tables[2] = b

	flat := models.NewTable()
	flat.Set("2020-01-01", "value", 7)
	flat.Set("2020-01-02", "value", 7)
	s.tables[4] = flat
	return s
}

func TestNorm(t *testing.T) {
	srv := newTestServer(t, fixture(), models.LoadSequential)

	rec := get(srv, "/signals/norm/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"2020-01-01": {"value": 0},
		"2020-01-02": {"value": 50},
		"2020-01-03": {"value": 100}
	}`, rec.Body.String())
}

func TestNorm_ConstantColumnIsNull(t *testing.T) {
	srv := newTestServer(t, fixture(), models.LoadSequential)

	rec := get(srv, "/signals/norm/4")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"2020-01-01": {"value": null}, "2020-01-02": {"value": null}}`, rec.Body.String())
}

func TestNorm_PercentEncodedID(t *testing.T) {
	src := fixture()
	srv := newTestServer(t, src, models.LoadSequential)

	rec := get(srv, "/signals/norm/%31")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, get(srv, "/signals/norm/1").Body.String(), rec.Body.String())
	assert.Equal(t, 2, src.calls)
}

func TestRepeatedRequestsAreIdentical(t *testing.T) {
	tests := []struct {
		target  string
		fetches int
	}{
		{"/signals/norm/1", 1},
		{"/signals/combine/?signal=1,0.5&signal=2,0.5", 2},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			src := fixture()
			srv := newTestServer(t, src, models.LoadSequential)

			first := get(srv, tt.target)
			require.Equal(t, http.StatusOK, first.Code)
			assert.Equal(t, tt.fetches, src.calls)

			second := get(srv, tt.target)
			require.Equal(t, http.StatusOK, second.Code)
			assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
			assert.Equal(t, 2*tt.fetches, src.calls)
		})
	}
}

func TestNorm_RecordsFormat(t *testing.T) {
	srv := newTestServer(t, fixture(), models.LoadSequential)

	rec := get(srv, "/signals/norm/1?format=records")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"date": "2020-01-01", "value": 0},
		{"date": "2020-01-02", "value": 50},
		{"date": "2020-01-03", "value": 100}
	]`, rec.Body.String())
}

func TestNorm_BadRequests(t *testing.T) {
	tests := []struct {
		target string
		msg    string
	}{
		{"/signals/norm/abc", models.MsgIDNotInteger},
		{"/signals/norm/1.5", models.MsgIDNotInteger},
		{"/signals/norm/0", models.MsgIDOutOfRange},
		{"/signals/norm/7", models.MsgIDOutOfRange},
		{"/signals/norm/99999999999999999999", models.MsgIDOutOfRange},
		{"/signals/norm/-99999999999999999999", models.MsgIDOutOfRange},
		{"/signals/norm/%7A", models.MsgIDNotInteger},
		{"/signals/norm/1?format=xml", "format must be one of: index, records"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			src := fixture()
			srv := newTestServer(t, src, models.LoadSequential)

			rec := get(srv, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"message":"`+tt.msg+`"}`, rec.Body.String())
			assert.Zero(t, src.calls)
		})
	}
}

func TestNorm_UpstreamFailureIsPlain500(t *testing.T) {
	srv := newTestServer(t, fixture(), models.LoadSequential)

	rec := get(srv, "/signals/norm/5")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "message")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestCombine(t *testing.T) {
	srv := newTestServer(t, fixture(), models.LoadSequential)

	for _, path := range []string{"/signals/combine/", "/signals/combine"} {
		rec := get(srv, path+"?signal=1,0.5&signal=2,0.5")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{
			"2020-01-01": {"value": 2},
			"2020-01-02": {"value": 3},
			"2020-01-03": {"value": 4}
		}`, rec.Body.String())
	}
}

func TestCombine_SequentialLoadsByPosition(t *testing.T) {
	src := fixture()
	srv := newTestServer(t, src, models.LoadSequential)

	rec := get(srv, "/signals/combine/?signal=3,0.5&signal=4,0.5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"no weight supplied for signal 1"}`, rec.Body.String())
	assert.Zero(t, src.calls)
}

func TestCombine_NamedMode(t *testing.T) {
	srv := newTestServer(t, fixture(), models.LoadSequential)

	rec := get(srv, "/signals/combine/?signal=2,2&mode=named")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"2020-01-01": {"value": 6},
		"2020-01-02": {"value": 8},
		"2020-01-03": {"value": 10}
	}`, rec.Body.String())
}

func TestCombine_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
		msg   string
	}{
		{"no signals", "", models.MsgNoSignals},
		{"bad id", "?signal=a,1", models.MsgIDNotInteger},
		{"id out of range", "?signal=8,1", models.MsgIDOutOfRange},
		{"id beyond int", "?signal=99999999999999999999,1", models.MsgIDOutOfRange},
		{"bad weight", "?signal=1,x", models.MsgWeightNotFloat},
		{"no comma", "?signal=1", models.MsgWeightNotFloat},
		{"second pair bad", "?signal=1,1&signal=2,abc", models.MsgWeightNotFloat},
		{"bad mode", "?signal=1,1&mode=random", "mode must be one of: sequential, named"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fixture()
			srv := newTestServer(t, src, models.LoadSequential)

			rec := get(srv, "/signals/combine/"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"message":"`+tt.msg+`"}`, rec.Body.String())
			assert.Zero(t, src.calls)
		})
	}
}

func TestCombine_UpstreamFailureIsPlain500(t *testing.T) {
	src := fixture()
	delete(src.tables, 2)
	srv := newTestServer(t, src, models.LoadSequential)

	rec := get(srv, "/signals/combine/?signal=1,1&signal=2,1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "message")
	assert.Equal(t, 2, src.calls)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, fixture(), models.LoadSequential)

	rec := get(srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUpstreamFailureLoggedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := xlogger.New(&xlogger.Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	loader := usecase.NewSignalLoader(fixture())
	h := NewSignalsEchoHandler(l, usecase.NewNormalizer(loader), usecase.NewCombiner(loader, models.LoadSequential))
	srv := xhttp.NewServer(h, xhttp.WithLogger(l), xhttp.WithMetricsPath(""))

	rec := get(srv, "/signals/norm/3")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "upstream down"))
}
