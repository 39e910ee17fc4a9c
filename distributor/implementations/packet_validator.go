package implementations

import (
	"fmt"

	"logs-distributor/config"
	"logs-distributor/distributor/interfaces"
	"logs-distributor/models"
)

// PacketValidator implements the PacketValidator interface: the
// ingress schema check from the base spec's §4.7, generalized from the
// teacher's size/count-only validator to also cover packet_id,
// agent_id, and log level.
type PacketValidator struct{}

// Ensure PacketValidator implements the interface.
var _ interfaces.PacketValidator = (*PacketValidator)(nil)

// NewPacketValidator constructs a PacketValidator.
func NewPacketValidator() *PacketValidator {
	return &PacketValidator{}
}

// ValidatePacket validates an incoming log packet against the ingress
// schema. Once validated, the core never re-validates.
func (v *PacketValidator) ValidatePacket(packet models.LogPacket) error {
	if packet.ID == "" {
		return fmt.Errorf("packet_id must be non-empty")
	}
	if packet.AgentID == "" {
		return fmt.Errorf("agent_id must be non-empty")
	}
	if len(packet.Messages) == 0 {
		return fmt.Errorf("packet must contain at least one message")
	}
	if len(packet.Messages) > config.MaxMessagesPerPacket {
		return fmt.Errorf("packet contains %d messages, maximum allowed is %d", len(packet.Messages), config.MaxMessagesPerPacket)
	}

	totalSize := 0
	for _, msg := range packet.Messages {
		if len(msg.Message) > config.MaxLogMessageLength {
			return fmt.Errorf("message length %d exceeds maximum %d", len(msg.Message), config.MaxLogMessageLength)
		}
		if msg.Level != "" && !models.LogLevel(msg.Level).IsValid() {
			return fmt.Errorf("invalid log level %q", msg.Level)
		}
		totalSize += len(msg.Message)
	}

	if totalSize > config.MaxPacketSizeBytes {
		return fmt.Errorf("packet size %d bytes exceeds maximum %d bytes", totalSize, config.MaxPacketSizeBytes)
	}

	return nil
}
