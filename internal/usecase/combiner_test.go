package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"SignalMix/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoDates = []string{"d1", "d2"}

func seeded() *fakeSource {
	src := newFakeSource()
	for id := models.SignalID(1); id <= 6; id++ {
		v := float64(id)
		src.tables[id] = single(twoDates, v, v*10)
	}
	return src
}

func TestCombiner_Sequential(t *testing.T) {
	src := seeded()
	c := NewCombiner(NewSignalLoader(src), models.LoadSequential)

	out, err := c.Combine(context.Background(), []string{"1,0.5", "2,0.5"}, "")
	require.NoError(t, err)

	assert.Equal(t, twoDates, out.Dates())
	assert.InDelta(t, 1.5, out.Get("d1", "v"), 1e-9)
	assert.InDelta(t, 15.0, out.Get("d2", "v"), 1e-9)
	assert.Equal(t, []models.SignalID{1, 2}, src.Fetched())
}

func TestCombiner_SequentialLoadsByPosition(t *testing.T) {
	src := seeded()
	c := NewCombiner(NewSignalLoader(src), models.LoadSequential)

	// signals 1 and 2 are loaded but only 3 and 4 carry weights
	_, err := c.Combine(context.Background(), []string{"3,0.5", "4,0.5"}, "")
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "no weight supplied for signal 1", verr.Message)
	assert.Empty(t, src.Fetched())

	// weights for 1 and 2 present, extra pairs only extend the count
	out, err := c.Combine(context.Background(), []string{"2,1", "1,2"}, "")
	require.NoError(t, err)
	assert.InDelta(t, 2*1+1*2, out.Get("d1", "v"), 1e-9)
	assert.Equal(t, []models.SignalID{1, 2}, src.Fetched())
}

func TestCombiner_Named(t *testing.T) {
	src := seeded()
	c := NewCombiner(NewSignalLoader(src), models.LoadSequential)

	out, err := c.Combine(context.Background(), []string{"3,0.5", "4,0.5"}, models.LoadNamed)
	require.NoError(t, err)

	assert.InDelta(t, 3.5, out.Get("d1", "v"), 1e-9)
	assert.InDelta(t, 35.0, out.Get("d2", "v"), 1e-9)
	assert.Equal(t, []models.SignalID{3, 4}, src.Fetched())
}

func TestCombiner_DefaultModeFromConfig(t *testing.T) {
	src := seeded()
	c := NewCombiner(NewSignalLoader(src), models.LoadNamed)
	assert.Equal(t, models.LoadNamed, c.Mode())

	_, err := c.Combine(context.Background(), []string{"5,1"}, "")
	require.NoError(t, err)
	assert.Equal(t, []models.SignalID{5}, src.Fetched())

	assert.Equal(t, models.LoadSequential, NewCombiner(nil, "bogus").Mode())
}

func TestCombiner_DuplicateIDLastWeightWins(t *testing.T) {
	src := seeded()
	c := NewCombiner(NewSignalLoader(src), models.LoadSequential)

	// each distinct id is loaded once and 1 keeps its last weight
	out, err := c.Combine(context.Background(), []string{"1,5", "1,1", "2,0"}, models.LoadNamed)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.Get("d1", "v"), 1e-9)
	assert.Equal(t, []models.SignalID{1, 2}, src.Fetched())
}

func TestCombiner_ValidationBeforeFetch(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
		msg   string
	}{
		{"empty", nil, models.MsgNoSignals},
		{"bad id", []string{"x,1"}, models.MsgIDNotInteger},
		{"id out of range", []string{"1,1", "9,1"}, models.MsgIDOutOfRange},
		{"bad weight", []string{"1,x"}, models.MsgWeightNotFloat},
		{"missing weight", []string{"1"}, models.MsgWeightNotFloat},
		{"empty weight", []string{"1,"}, models.MsgWeightNotFloat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := seeded()
			c := NewCombiner(NewSignalLoader(src), models.LoadSequential)

			_, err := c.Combine(context.Background(), tt.pairs, "")
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
			assert.Equal(t, tt.msg, verr.Message)
			assert.Empty(t, src.Fetched())
		})
	}
}

func TestCombiner_UpstreamFailureAborts(t *testing.T) {
	src := seeded()
	src.fail[1] = &models.UpstreamError{SignalID: 1, Err: errors.New("connection refused")}
	c := NewCombiner(NewSignalLoader(src), models.LoadSequential)

	_, err := c.Combine(context.Background(), []string{"1,1", "2,1"}, "")
	var uerr *models.UpstreamError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, models.SignalID(1), uerr.SignalID)
	assert.Equal(t, []models.SignalID{1}, src.Fetched())
}

func TestCombiner_MisalignedDatesYieldNaN(t *testing.T) {
	src := newFakeSource()
	src.tables[1] = single([]string{"d1", "d2"}, 1, 2)
	src.tables[2] = single([]string{"d2", "d3"}, 10, 20)
	c := NewCombiner(NewSignalLoader(src), models.LoadSequential)

	out, err := c.Combine(context.Background(), []string{"1,1", "2,1"}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"d1", "d2", "d3"}, out.Dates())
	assert.True(t, math.IsNaN(out.Get("d1", "v")))
	assert.InDelta(t, 12.0, out.Get("d2", "v"), 1e-9)
	assert.True(t, math.IsNaN(out.Get("d3", "v")))
}
