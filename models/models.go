package models

import (
	"time"

	"github.com/google/uuid"
)

// LogLevel is the closed set of severities accepted on ingress.
type LogLevel string

const (
	LevelDebug    LogLevel = "DEBUG"
	LevelInfo     LogLevel = "INFO"
	LevelWarning  LogLevel = "WARNING"
	LevelError    LogLevel = "ERROR"
	LevelCritical LogLevel = "CRITICAL"
)

// IsValid reports whether l is one of the known log levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical:
		return true
	default:
		return false
	}
}

// LogMessage represents a single log entry. Opaque to the core beyond
// size accounting; forwarded to analyzers verbatim.
type LogMessage struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Source    string                 `json:"source"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// LogPacket is the atomic unit of distribution: delivered to exactly
// one analyzer or dropped, never split.
type LogPacket struct {
	ID         string       `json:"packet_id"`
	AgentID    string       `json:"agent_id"`
	Messages   []LogMessage `json:"messages"`
	RetryCount int          `json:"retry_count,omitempty"`
}

// AnalyzerEntry is a configured downstream analyzer: the single source
// of truth for selection inputs (weight, health).
type AnalyzerEntry struct {
	Name             string    `json:"name"`
	URL              string    `json:"url"`
	HealthURL        string    `json:"health_url"`
	Weight           float64   `json:"weight"`
	Healthy          bool      `json:"healthy"`
	LastHealthCheck  time.Time `json:"last_health_check"`
	PacketsAccepted  int64     `json:"packets_accepted"`
	MessagesAccepted int64     `json:"messages_accepted"`
}

// Stats is the operational snapshot exposed via /stats and /health.
type Stats struct {
	TotalPacketsAccepted  int64            `json:"total_packets_accepted"`
	TotalMessagesAccepted int64            `json:"total_messages_accepted"`
	FailedSends           int64            `json:"failed_sends"`
	PerAnalyzerPackets    map[string]int64 `json:"per_analyzer_packets"`
	PerAnalyzerMessages   map[string]int64 `json:"per_analyzer_messages"`
	StartTime             time.Time        `json:"start_time"`
}

// BackfillMessageIDs assigns a generated ID to every message that
// arrived without one. packet_id is never generated this way: it is
// caller-supplied and validated, not backfilled.
func (p *LogPacket) BackfillMessageIDs() {
	for i := range p.Messages {
		if p.Messages[i].ID == "" {
			p.Messages[i].ID = uuid.New().String()
		}
	}
}
