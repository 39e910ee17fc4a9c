package interfaces

import "logs-distributor/models"

// Registry is the single source of truth for analyzer configuration,
// health, and acceptance statistics. Readers take a short-lived lock;
// no reader holds it across a network call.
type Registry interface {
	// Snapshot returns a shallow copy of all configured analyzers.
	Snapshot() []models.AnalyzerEntry

	// HealthySnapshot returns only the analyzers currently healthy.
	HealthySnapshot() []models.AnalyzerEntry

	// SetHealth idempotently updates an analyzer's health flag. A
	// transition emits a log line; the data-path contract is unchanged.
	SetHealth(name string, healthy bool)

	// RecordSuccess records a successful delivery to the named analyzer.
	RecordSuccess(name string, messageCount int)

	// RecordFailure records a packet exhausted by retry or dropped for
	// lack of a healthy analyzer.
	RecordFailure()

	// Stats returns a deep copy of the current statistics.
	Stats() models.Stats
}
