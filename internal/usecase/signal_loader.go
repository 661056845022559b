package usecase

import (
	"context"
	"fmt"

	"SignalMix/internal/domain/models"
	domrepo "SignalMix/internal/domain/repository"
)

// SignalLoader validates identifiers and fetches signal tables.
type SignalLoader struct {
	source domrepo.SignalSource
}

func NewSignalLoader(source domrepo.SignalSource) *SignalLoader {
	return &SignalLoader{source: source}
}

// Load parses rawID and fetches its table. Invalid identifiers fail with a
// ValidationError before any upstream call.
func (l *SignalLoader) Load(ctx context.Context, rawID string) (*models.Table, error) {
	id, err := models.ParseSignalID(rawID)
	if err != nil {
		return nil, err
	}
	return l.LoadID(ctx, id)
}

// LoadID fetches the table for an already parsed identifier.
func (l *SignalLoader) LoadID(ctx context.Context, id models.SignalID) (*models.Table, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	t, err := l.source.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load signal %d: %w", id, err)
	}
	return t, nil
}
