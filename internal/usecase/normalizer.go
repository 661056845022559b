package usecase

import (
	"context"

	"SignalMix/internal/domain/models"
	"SignalMix/internal/services/transform"
)

// Normalizer loads one signal and min-max normalizes every column to [0, 100].
type Normalizer struct {
	loader *SignalLoader
}

func NewNormalizer(loader *SignalLoader) *Normalizer {
	return &Normalizer{loader: loader}
}

func (n *Normalizer) Normalize(ctx context.Context, rawID string) (*models.Table, error) {
	t, err := n.loader.Load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return transform.MinMax(t, transform.NormalizeScale), nil
}
