package implementations

import (
	"math/rand"

	"logs-distributor/distributor/interfaces"
	"logs-distributor/models"
)

// WeightedSelector implements the Selector interface as a pure
// stateless draw over a healthy snapshot. Unlike the smooth-weighted-
// round-robin this replaces, it carries no cursor between calls: every
// Select is an independent weighted coin flip, which is what lets the
// worker pool's retry loop reselect freely without special-casing the
// just-failed analyzer.
type WeightedSelector struct{}

// Ensure WeightedSelector implements the interface.
var _ interfaces.Selector = (*WeightedSelector)(nil)

// NewWeightedSelector constructs a WeightedSelector.
func NewWeightedSelector() *WeightedSelector {
	return &WeightedSelector{}
}

// Select draws uniformly from [0, totalWeight) and walks healthy in
// configured order, returning the first entry whose cumulative weight
// exceeds the draw. Renormalizes against whatever healthy subset is
// passed in — no stored normalization, no stale divisor.
func (s *WeightedSelector) Select(healthy []models.AnalyzerEntry) (models.AnalyzerEntry, bool) {
	if len(healthy) == 0 {
		return models.AnalyzerEntry{}, false
	}

	var totalWeight float64
	for _, a := range healthy {
		totalWeight += a.Weight
	}
	if totalWeight <= 0 {
		return models.AnalyzerEntry{}, false
	}

	draw := rand.Float64() * totalWeight

	var cumulative float64
	for _, a := range healthy {
		cumulative += a.Weight
		if draw < cumulative {
			return a, true
		}
	}

	// Floating-point safety fallback.
	return healthy[len(healthy)-1], true
}
