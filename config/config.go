package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const (
	// Server Configuration
	DefaultPort     = "8080"
	ReadTimeout     = 30 * time.Second
	WriteTimeout    = 30 * time.Second
	IdleTimeout     = 120 * time.Second
	ShutdownTimeout = 30 * time.Second

	// Distributor Configuration
	QueueBuffer     = 5000
	WorkerCount     = 10
	SendTimeout     = 5 * time.Second
	ProbeInterval   = 5 * time.Second
	ProbeTimeout    = 2 * time.Second
	SubmitTimeout   = 2 * time.Second
	ShutdownDrain   = 10 * time.Second

	// Retry Configuration
	MaxRetries     = 2
	BaseRetryDelay = 500 * time.Millisecond

	// Validation
	MaxPacketSizeBytes    = 1024 * 1024 // 1MB per packet
	MaxMessagesPerPacket  = 1000
	MinWeight             = 0.0
	MaxWeight             = 1.0
	MaxAnalyzerNameLength = 100
	MaxLogMessageLength   = 10000

	// WeightSumLowWarn and WeightSumHighWarn bound the "healthy" range for
	// the configured weight sum; outside it we warn but never abort.
	WeightSumLowWarn  = 0.99
	WeightSumHighWarn = 1.01
)

// AnalyzerConfig is a single configured downstream analyzer.
type AnalyzerConfig struct {
	Name      string  `json:"name"`
	URL       string  `json:"url"`
	HealthURL string  `json:"health_url"`
	Weight    float64 `json:"weight"`
}

// GetDefaultAnalyzers returns the built-in analyzer pool, used unless
// ANALYZERS_JSON overrides it. Mirrors the shape of the teacher's
// hand-written table but generalized to carry URL/HealthURL instead of
// a simulated processing time.
func GetDefaultAnalyzers() []AnalyzerConfig {
	return []AnalyzerConfig{
		{Name: "analyzer-a1", URL: "http://localhost:9001/analyze", HealthURL: "http://localhost:9001/health", Weight: 0.4},
		{Name: "analyzer-a2", URL: "http://localhost:9002/analyze", HealthURL: "http://localhost:9002/health", Weight: 0.3},
		{Name: "analyzer-a3", URL: "http://localhost:9003/analyze", HealthURL: "http://localhost:9003/health", Weight: 0.2},
		{Name: "analyzer-a4", URL: "http://localhost:9004/analyze", HealthURL: "http://localhost:9004/health", Weight: 0.1},
	}
}

// LoadAnalyzers returns the analyzer pool: ANALYZERS_JSON (a JSON array
// of AnalyzerConfig) if set, otherwise the built-in default table. This
// is the only environment-variable parsing the core performs; sourcing
// beyond this env var (files, flags, secrets managers) is out of scope.
func LoadAnalyzers() ([]AnalyzerConfig, error) {
	raw := os.Getenv("ANALYZERS_JSON")
	if raw == "" {
		return GetDefaultAnalyzers(), nil
	}

	var cfgs []AnalyzerConfig
	if err := json.Unmarshal([]byte(raw), &cfgs); err != nil {
		return nil, fmt.Errorf("failed to parse ANALYZERS_JSON: %w", err)
	}
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("ANALYZERS_JSON must contain at least one analyzer")
	}
	return cfgs, nil
}

// WeightSum sums the configured weights, used only to decide whether to
// log a startup warning — the selector always renormalizes against
// whatever sum it observes at selection time.
func WeightSum(cfgs []AnalyzerConfig) float64 {
	var sum float64
	for _, c := range cfgs {
		sum += c.Weight
	}
	return sum
}
