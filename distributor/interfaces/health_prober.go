package interfaces

import (
	"context"
	"sync"
)

// HealthProber periodically checks each analyzer's health endpoint and
// updates the registry's view of liveness.
type HealthProber interface {
	Start(ctx context.Context, wg *sync.WaitGroup)
}
