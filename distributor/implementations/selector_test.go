package implementations

import (
	"testing"

	"logs-distributor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedSelector_EmptyHealthySetReturnsFalse(t *testing.T) {
	s := NewWeightedSelector()

	_, ok := s.Select(nil)
	assert.False(t, ok)
}

func TestWeightedSelector_ZeroTotalWeightReturnsFalse(t *testing.T) {
	s := NewWeightedSelector()

	healthy := []models.AnalyzerEntry{
		{Name: "a1", Weight: 0, Healthy: true},
		{Name: "a2", Weight: 0, Healthy: true},
	}

	_, ok := s.Select(healthy)
	assert.False(t, ok)
}

func TestWeightedSelector_SingleAnalyzerAlwaysWins(t *testing.T) {
	s := NewWeightedSelector()

	healthy := []models.AnalyzerEntry{{Name: "only", Weight: 1.0, Healthy: true}}

	for i := 0; i < 50; i++ {
		a, ok := s.Select(healthy)
		require.True(t, ok)
		assert.Equal(t, "only", a.Name)
	}
}

func TestWeightedSelector_ConvergesToConfiguredWeights(t *testing.T) {
	s := NewWeightedSelector()

	healthy := []models.AnalyzerEntry{
		{Name: "a1", Weight: 0.4, Healthy: true},
		{Name: "a2", Weight: 0.3, Healthy: true},
		{Name: "a3", Weight: 0.2, Healthy: true},
		{Name: "a4", Weight: 0.1, Healthy: true},
	}

	const draws = 20000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		a, ok := s.Select(healthy)
		require.True(t, ok)
		counts[a.Name]++
	}

	assert.InDelta(t, 0.4, float64(counts["a1"])/draws, 0.03)
	assert.InDelta(t, 0.3, float64(counts["a2"])/draws, 0.03)
	assert.InDelta(t, 0.2, float64(counts["a3"])/draws, 0.03)
	assert.InDelta(t, 0.1, float64(counts["a4"])/draws, 0.03)
}

func TestWeightedSelector_RenormalizesOverHealthySubset(t *testing.T) {
	s := NewWeightedSelector()

	// a3 is unhealthy and excluded from the slice entirely, as the
	// worker pool would do by calling HealthySnapshot first.
	healthy := []models.AnalyzerEntry{
		{Name: "a1", Weight: 0.4, Healthy: true},
		{Name: "a2", Weight: 0.3, Healthy: true},
	}

	const draws = 10000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		a, ok := s.Select(healthy)
		require.True(t, ok)
		counts[a.Name]++
	}

	// Renormalized: 0.4/(0.4+0.3) ~= 0.571, 0.3/0.7 ~= 0.429
	assert.InDelta(t, 0.571, float64(counts["a1"])/draws, 0.04)
	assert.InDelta(t, 0.429, float64(counts["a2"])/draws, 0.04)
}
