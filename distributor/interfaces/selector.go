package interfaces

import "logs-distributor/models"

// Selector picks an analyzer from a healthy snapshot via weighted
// random draw. Stateless across calls: safe under arbitrary
// concurrency, no round-robin cursor.
type Selector interface {
	// Select returns the chosen analyzer, or ok=false if none is
	// available (empty healthy set, or zero total weight).
	Select(healthy []models.AnalyzerEntry) (models.AnalyzerEntry, bool)
}
