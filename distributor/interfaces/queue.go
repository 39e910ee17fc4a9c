package interfaces

import (
	"context"

	"logs-distributor/models"
)

// QueueResult is the outcome of a non-blocking Offer.
type QueueResult int

const (
	Accepted QueueResult = iota
	Full
)

// Queue is a bounded FIFO of log packets. Offer never blocks; Take may.
type Queue interface {
	Offer(packet models.LogPacket) QueueResult
	// Take blocks until a packet is available, ctx is done, or the
	// queue is closed and drained. ok is false in the latter two cases.
	Take(ctx context.Context) (packet models.LogPacket, ok bool)
	Size() int
	Close()
}
