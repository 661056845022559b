package usecase

import (
	"context"
	"errors"
	"sync"

	"SignalMix/internal/domain/models"
)

// fakeSource serves canned tables and records the identifiers requested.
type fakeSource struct {
	mu      sync.Mutex
	tables  map[models.SignalID]*models.Table
	fail    map[models.SignalID]error
	fetched []models.SignalID
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		tables: make(map[models.SignalID]*models.Table),
		fail:   make(map[models.SignalID]error),
	}
}

func (f *fakeSource) Fetch(_ context.Context, id models.SignalID) (*models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, id)
	if err, ok := f.fail[id]; ok {
		return nil, err
	}
	t, ok := f.tables[id]
	if !ok {
		return nil, &models.UpstreamError{SignalID: id, Status: 404, Err: errors.New("not found")}
	}
	return t, nil
}

func (f *fakeSource) Fetched() []models.SignalID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.SignalID, len(f.fetched))
	copy(out, f.fetched)
	return out
}

// single builds a one-column table "v" over the given dates.
func single(dates []string, values ...float64) *models.Table {
	t := models.NewTable()
	for i, d := range dates {
		t.Set(d, "v", values[i])
	}
	return t
}
