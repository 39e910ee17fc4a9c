package interfaces

import (
	"context"
	"sync"
)

// WorkerPool runs cooperative workers that dequeue packets, select a
// downstream analyzer, send, and apply the retry policy.
type WorkerPool interface {
	Start(ctx context.Context, wg *sync.WaitGroup)
}
