package usecase

import (
	"context"

	"SignalMix/internal/domain/models"
	"SignalMix/internal/services/transform"
)

// Combiner computes the weighted sum of several signals.
type Combiner struct {
	loader      *SignalLoader
	defaultMode models.LoadMode
}

func NewCombiner(loader *SignalLoader, mode models.LoadMode) *Combiner {
	if !mode.IsValid() {
		mode = models.LoadSequential
	}
	return &Combiner{loader: loader, defaultMode: mode}
}

// Mode returns the load mode used when a request does not pick one.
func (c *Combiner) Mode() models.LoadMode { return c.defaultMode }

// Combine parses "<id>,<weight>" pairs and returns sum(weight[id] * table[id]).
//
// In LoadSequential mode the signals loaded are 1..N for N pairs, whatever
// identifiers the pairs name; each loaded id still needs a weight. In
// LoadNamed mode the named identifiers are loaded in first-appearance order.
// Weights are checked before any upstream call and signals are fetched one at
// a time; the first failure aborts the request.
func (c *Combiner) Combine(ctx context.Context, pairs []string, mode models.LoadMode) (*models.Table, error) {
	if len(pairs) == 0 {
		return nil, models.NewValidationError(models.MsgNoSignals)
	}
	if mode == "" {
		mode = c.defaultMode
	}

	weights, err := models.ParseWeightMap(pairs)
	if err != nil {
		return nil, err
	}

	ids := loadOrder(weights, len(pairs), mode)
	terms := make([]transform.Term, len(ids))
	for i, id := range ids {
		w, ok := weights.Weight(id)
		if !ok {
			return nil, models.MissingWeightError(id)
		}
		terms[i].Weight = w
	}

	for i, id := range ids {
		t, err := c.loader.LoadID(ctx, id)
		if err != nil {
			return nil, err
		}
		terms[i].Table = t
	}

	return transform.LinearCombination(terms), nil
}

func loadOrder(weights *models.WeightMap, n int, mode models.LoadMode) []models.SignalID {
	if mode == models.LoadNamed {
		return weights.IDs()
	}
	ids := make([]models.SignalID, n)
	for i := range ids {
		ids[i] = models.SignalID(i + 1)
	}
	return ids
}
