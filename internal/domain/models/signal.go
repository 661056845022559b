package models

import (
	"errors"
	"strconv"

	"SignalMix/pkg/util"
)

const (
	MinSignalID SignalID = 1
	MaxSignalID SignalID = 6
)

// SignalID identifies one upstream time series.
type SignalID int

// ParseSignalID parses and range-checks a raw identifier.
func ParseSignalID(raw string) (SignalID, error) {
	n, err := util.ParseInt(raw)
	switch {
	case errors.Is(err, strconv.ErrRange):
		// integral but beyond int, so necessarily outside [1, 6]
		return 0, NewValidationError(MsgIDOutOfRange)
	case err != nil:
		return 0, NewValidationError(MsgIDNotInteger)
	}
	id := SignalID(n)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate checks that id lies in [MinSignalID, MaxSignalID].
func (id SignalID) Validate() error {
	if id < MinSignalID || id > MaxSignalID {
		return NewValidationError(MsgIDOutOfRange)
	}
	return nil
}

// LoadMode selects which signals a combine request fetches.
type LoadMode string

const (
	// LoadSequential fetches signals 1..N where N is the number of pairs given,
	// regardless of the identifiers named in the pairs.
	LoadSequential LoadMode = "sequential"
	// LoadNamed fetches the identifiers named in the pairs.
	LoadNamed LoadMode = "named"
)

// IsValid reports whether m is a known load mode.
func (m LoadMode) IsValid() bool {
	return m == LoadSequential || m == LoadNamed
}

// WeightMap maps signal identifiers to weights. Later pairs overwrite earlier ones.
type WeightMap struct {
	weights map[SignalID]float64
	order   []SignalID
}

func NewWeightMap() *WeightMap {
	return &WeightMap{weights: make(map[SignalID]float64)}
}

// Set stores weight for id, keeping the first-appearance order of ids.
func (w *WeightMap) Set(id SignalID, weight float64) {
	if _, ok := w.weights[id]; !ok {
		w.order = append(w.order, id)
	}
	w.weights[id] = weight
}

// Weight returns the weight for id.
func (w *WeightMap) Weight(id SignalID) (float64, bool) {
	v, ok := w.weights[id]
	return v, ok
}

// IDs returns the distinct identifiers in first-appearance order.
func (w *WeightMap) IDs() []SignalID {
	out := make([]SignalID, len(w.order))
	copy(out, w.order)
	return out
}

// Len returns the number of distinct identifiers.
func (w *WeightMap) Len() int { return len(w.order) }

// ParseWeightPair parses a "<id>,<weight>" query value.
func ParseWeightPair(raw string) (SignalID, float64, error) {
	left, right, ok := util.SplitPair(raw, ",")
	id, err := ParseSignalID(left)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, NewValidationError(MsgWeightNotFloat)
	}
	weight, err := util.ParseFloat(right)
	if err != nil {
		return 0, 0, NewValidationError(MsgWeightNotFloat)
	}
	return id, weight, nil
}

// ParseWeightMap parses every pair, failing on the first invalid one.
func ParseWeightMap(pairs []string) (*WeightMap, error) {
	wm := NewWeightMap()
	for _, p := range pairs {
		id, weight, err := ParseWeightPair(p)
		if err != nil {
			return nil, err
		}
		wm.Set(id, weight)
	}
	return wm, nil
}
