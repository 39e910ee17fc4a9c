package implementations

import (
	"sync"
	"time"

	"logs-distributor/config"
	"logs-distributor/distributor/interfaces"
	"logs-distributor/models"

	"go.uber.org/zap"
)

// Registry implements the Registry interface: the analyzer set plus
// the statistics ledger under a single lock, per the base spec's
// instruction that the two never need separate locks since every
// success-path update touches both.
type Registry struct {
	logger *zap.Logger
	mu     sync.RWMutex

	analyzers []models.AnalyzerEntry
	byName    map[string]int // name -> index into analyzers

	totalPacketsAccepted  int64
	totalMessagesAccepted int64
	failedSends           int64
	startTime             time.Time
}

// Ensure Registry implements the interface.
var _ interfaces.Registry = (*Registry)(nil)

// NewRegistry builds a fixed-size registry from the given analyzer
// configs. The analyzer set is immutable after construction; names
// must be unique.
func NewRegistry(cfgs []config.AnalyzerConfig, logger *zap.Logger) *Registry {
	r := &Registry{
		logger:    logger,
		analyzers: make([]models.AnalyzerEntry, 0, len(cfgs)),
		byName:    make(map[string]int, len(cfgs)),
		startTime: time.Now(),
	}

	for _, cfg := range cfgs {
		if _, exists := r.byName[cfg.Name]; exists {
			logger.Fatal("duplicate analyzer name in configuration", zap.String("name", cfg.Name))
		}
		r.byName[cfg.Name] = len(r.analyzers)
		r.analyzers = append(r.analyzers, models.AnalyzerEntry{
			Name:      cfg.Name,
			URL:       cfg.URL,
			HealthURL: cfg.HealthURL,
			Weight:    cfg.Weight,
			Healthy:   true, // initial default: trust until disproven, per SPEC_FULL.md open question #3
		})
	}

	return r
}

// Snapshot returns a shallow copy of all configured analyzers.
func (r *Registry) Snapshot() []models.AnalyzerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AnalyzerEntry, len(r.analyzers))
	copy(out, r.analyzers)
	return out
}

// HealthySnapshot returns only the currently healthy analyzers, in
// configured order.
func (r *Registry) HealthySnapshot() []models.AnalyzerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AnalyzerEntry, 0, len(r.analyzers))
	for _, a := range r.analyzers {
		if a.Healthy {
			out = append(out, a)
		}
	}
	return out
}

// SetHealth idempotently updates an analyzer's health flag.
func (r *Registry) SetHealth(name string, healthy bool) {
	r.mu.Lock()
	idx, ok := r.byName[name]
	if !ok {
		r.mu.Unlock()
		r.logger.Error("set_health for unknown analyzer", zap.String("name", name))
		return
	}

	entry := &r.analyzers[idx]
	transitioned := entry.Healthy != healthy
	entry.Healthy = healthy
	entry.LastHealthCheck = time.Now()
	r.mu.Unlock()

	if transitioned {
		r.logger.Info("analyzer health changed",
			zap.String("analyzer", name),
			zap.Bool("healthy", healthy),
		)
	}
}

// RecordSuccess records a successful delivery to the named analyzer.
func (r *Registry) RecordSuccess(name string, messageCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byName[name]
	if !ok {
		r.logger.Error("record_success for unknown analyzer", zap.String("name", name))
		return
	}

	r.analyzers[idx].PacketsAccepted++
	r.analyzers[idx].MessagesAccepted += int64(messageCount)
	r.totalPacketsAccepted++
	r.totalMessagesAccepted += int64(messageCount)
}

// RecordFailure records a packet exhausted by retry or dropped for
// lack of a healthy analyzer.
func (r *Registry) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failedSends++
}

// Stats returns a deep copy of the current statistics. Per-analyzer
// maps carry a key for every configured analyzer from construction
// time, so consumers never see missing-key ambiguity.
func (r *Registry) Stats() models.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perPackets := make(map[string]int64, len(r.analyzers))
	perMessages := make(map[string]int64, len(r.analyzers))
	for _, a := range r.analyzers {
		perPackets[a.Name] = a.PacketsAccepted
		perMessages[a.Name] = a.MessagesAccepted
	}

	return models.Stats{
		TotalPacketsAccepted:  r.totalPacketsAccepted,
		TotalMessagesAccepted: r.totalMessagesAccepted,
		FailedSends:           r.failedSends,
		PerAnalyzerPackets:    perPackets,
		PerAnalyzerMessages:   perMessages,
		StartTime:             r.startTime,
	}
}
