package implementations

import (
	"context"
	"net/http"
	"sync"
	"time"

	"logs-distributor/distributor/interfaces"

	"go.uber.org/zap"
)

// HealthProber implements the HealthProber interface: a single
// long-lived ticker task that concurrently GETs each analyzer's health
// URL and applies the results to the registry. Replaces the teacher's
// rand.Float64() simulation with a real HTTP check, grounded on
// ryouol-wla-distibutor's checkAnalyzerHealth and the Python original's
// health_monitor.py.
type HealthProber struct {
	registry interfaces.Registry
	client   *http.Client
	interval time.Duration
	logger   *zap.Logger
}

// Ensure HealthProber implements the interface.
var _ interfaces.HealthProber = (*HealthProber)(nil)

// NewHealthProber builds a prober with its own HTTP client, distinct
// from the data-path client, so data-path connection-pool saturation
// cannot starve health probes.
func NewHealthProber(registry interfaces.Registry, interval, timeout time.Duration, logger *zap.Logger) *HealthProber {
	return &HealthProber{
		registry: registry,
		client:   &http.Client{Timeout: timeout},
		interval: interval,
		logger:   logger,
	}
}

// Start launches the prober loop.
func (h *HealthProber) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go h.loop(ctx, wg)
}

func (h *HealthProber) loop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.probeOnceSafely(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// probeOnceSafely runs one probe iteration, recovering from a panic in
// the iteration so it never stops the loop. A panic inside a single
// analyzer's probe is recovered in probeOnce and never cancels its
// siblings.
func (h *HealthProber) probeOnceSafely(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("health probe iteration panicked, continuing", zap.Any("recover", r))
		}
	}()
	h.probeOnce(ctx)
}

func (h *HealthProber) probeOnce(ctx context.Context) {
	analyzers := h.registry.Snapshot()

	var wg sync.WaitGroup
	wg.Add(len(analyzers))
	for _, a := range analyzers {
		go func(name, healthURL string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					h.logger.Error("health probe panicked, continuing",
						zap.String("analyzer", name),
						zap.Any("recover", r),
					)
				}
			}()
			healthy := h.check(ctx, healthURL)
			h.registry.SetHealth(name, healthy)
		}(a.Name, a.HealthURL)
	}
	wg.Wait()
}

// check issues GET to healthURL. 200 = healthy; any other status,
// timeout, connect error, or exception is unhealthy.
func (h *HealthProber) check(ctx context.Context, healthURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return false
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
