package repository

import (
	"context"

	"SignalMix/internal/domain/models"
)

// SignalSource fetches one signal table from the upstream service.
type SignalSource interface {
	Fetch(ctx context.Context, id models.SignalID) (*models.Table, error)
}

type Metrics interface {
	RecordFetch(id models.SignalID, outcome string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
