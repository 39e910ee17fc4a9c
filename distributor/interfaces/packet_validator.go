package interfaces

import "logs-distributor/models"

// PacketValidator validates incoming log packets against the ingress schema.
type PacketValidator interface {
	ValidatePacket(packet models.LogPacket) error
}
