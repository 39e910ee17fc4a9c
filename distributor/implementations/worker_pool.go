package implementations

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"logs-distributor/distributor/interfaces"
	"logs-distributor/models"

	"go.uber.org/zap"
)

// outcome classifies the result of one downstream HTTP attempt.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomePermanentFailure
	outcomeRetryable
)

// WorkerPool implements the WorkerPool interface: Nw cooperative
// workers that dequeue packets, select a downstream analyzer, POST the
// packet verbatim, classify the outcome, and retry transient failures
// with exponential backoff and a fresh selection on every attempt.
// Replaces the teacher's split packet_processor.go/retry_handler.go
// (which simulated analyzers) with real HTTP, grounded on
// ryouol-wla-distibutor/pkg/analyzer/analyzer.go::SendLogPacket and the
// Python original's distribute() retry loop.
type WorkerPool struct {
	queue      interfaces.Queue
	registry   interfaces.Registry
	selector   interfaces.Selector
	client     *http.Client
	workers    int
	maxRetries int
	baseDelay  time.Duration
	logger     *zap.Logger
}

// Ensure WorkerPool implements the interface.
var _ interfaces.WorkerPool = (*WorkerPool)(nil)

// NewWorkerPool builds a worker pool. client is the shared data-path
// HTTP client (keep-alive pool), distinct from the health prober's.
func NewWorkerPool(
	queue interfaces.Queue,
	registry interfaces.Registry,
	selector interfaces.Selector,
	client *http.Client,
	workers int,
	maxRetries int,
	baseDelay time.Duration,
	logger *zap.Logger,
) *WorkerPool {
	return &WorkerPool{
		queue:      queue,
		registry:   registry,
		selector:   selector,
		client:     client,
		workers:    workers,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Start spawns the configured number of workers.
func (p *WorkerPool) Start(ctx context.Context, wg *sync.WaitGroup) {
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.run(ctx, wg)
	}
}

func (p *WorkerPool) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		packet, ok := p.queue.Take(ctx)
		if !ok {
			return
		}
		p.deliver(ctx, packet)
	}
}

// deliver runs the select/send/classify/retry loop for one packet.
func (p *WorkerPool) deliver(ctx context.Context, packet models.LogPacket) {
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		healthy := p.registry.HealthySnapshot()
		analyzer, ok := p.selector.Select(healthy)
		if !ok {
			p.logger.Warn("no healthy analyzer available, dropping packet", zap.String("packet_id", packet.ID))
			p.registry.RecordFailure()
			return
		}

		result := p.send(analyzer, packet)

		switch result {
		case outcomeSuccess:
			p.registry.RecordSuccess(analyzer.Name, len(packet.Messages))
			return
		case outcomePermanentFailure:
			p.logger.Warn("permanent downstream rejection, dropping packet",
				zap.String("packet_id", packet.ID),
				zap.String("analyzer", analyzer.Name),
			)
			p.registry.RecordFailure()
			return
		case outcomeRetryable:
			if attempt < p.maxRetries {
				delay := p.baseDelay * time.Duration(1<<uint(attempt))
				p.sleep(ctx, delay)
				continue
			}
		}
	}

	p.logger.Warn("packet exhausted retries, dropping", zap.String("packet_id", packet.ID))
	p.registry.RecordFailure()
}

// send POSTs the packet verbatim as JSON and classifies the response.
// Deliberately independent of the worker's shutdown context: an
// in-flight send is bounded by the client's own timeout, not cut short
// the instant Stop() cancels the pool.
func (p *WorkerPool) send(analyzer models.AnalyzerEntry, packet models.LogPacket) outcome {
	body, err := json.Marshal(packet)
	if err != nil {
		p.logger.Error("failed to marshal packet", zap.Error(err), zap.String("packet_id", packet.ID))
		return outcomeRetryable
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, analyzer.URL, bytes.NewReader(body))
	if err != nil {
		return outcomeRetryable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return outcomeRetryable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return outcomeSuccess
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return outcomePermanentFailure
	default:
		return outcomeRetryable
	}
}

// sleep waits for delay, cancellable by ctx (shutdown).
func (p *WorkerPool) sleep(ctx context.Context, delay time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
