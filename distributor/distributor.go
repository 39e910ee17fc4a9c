// Package distributor implements the lifecycle controller (C8): it
// brings the registry, queue, HTTP clients, health prober, and worker
// pool up in dependency order, and tears them down on shutdown,
// draining in-flight work within a grace period.
package distributor

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"logs-distributor/config"
	"logs-distributor/distributor/implementations"
	"logs-distributor/distributor/interfaces"
	"logs-distributor/models"

	"go.uber.org/zap"
)

// Distributor is the lifecycle controller (C8).
type Distributor struct {
	logger *zap.Logger

	registry  *implementations.Registry
	queue     interfaces.Queue
	validator interfaces.PacketValidator
	prober    interfaces.HealthProber
	pool      interfaces.WorkerPool

	dataClient *http.Client

	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	proberWG      sync.WaitGroup
	mu            sync.Mutex
	isRunning     bool
	shutdownDrain time.Duration
}

// New builds a Distributor with dependency injection in the teacher's
// style, wiring the redesigned components (registry+selector+queue+
// worker pool+health prober) instead of the teacher's simulated ones.
func New(cfgs []config.AnalyzerConfig, logger *zap.Logger) *Distributor {
	registry := implementations.NewRegistry(cfgs, logger)

	if sum := config.WeightSum(cfgs); sum < config.WeightSumLowWarn || sum > config.WeightSumHighWarn {
		logger.Warn("configured analyzer weights do not sum to ~1.0; selector will renormalize",
			zap.Float64("weight_sum", sum),
		)
	}

	queue := implementations.NewIngressQueue(config.QueueBuffer)
	selector := implementations.NewWeightedSelector()
	validator := implementations.NewPacketValidator()

	dataClient := &http.Client{
		Timeout: config.SendTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	pool := implementations.NewWorkerPool(
		queue, registry, selector, dataClient,
		config.WorkerCount, config.MaxRetries, config.BaseRetryDelay,
		logger,
	)

	prober := implementations.NewHealthProber(registry, config.ProbeInterval, config.ProbeTimeout, logger)

	ctx, cancel := context.WithCancel(context.Background())

	return &Distributor{
		logger:        logger,
		registry:      registry,
		queue:         queue,
		validator:     validator,
		prober:        prober,
		pool:          pool,
		dataClient:    dataClient,
		ctx:           ctx,
		cancel:        cancel,
		shutdownDrain: config.ShutdownDrain,
	}
}

// Start brings C1-C7 up in dependency order: registry is already
// built; queue is already built; start the health prober, then the
// worker pool.
func (d *Distributor) Start() error {
	d.mu.Lock()
	if d.isRunning {
		d.mu.Unlock()
		return fmt.Errorf("distributor is already running")
	}
	d.isRunning = true
	d.mu.Unlock()

	d.prober.Start(d.ctx, &d.proberWG)
	d.pool.Start(d.ctx, &d.wg)

	return nil
}

// Stop gracefully shuts down: closes the queue so workers drain it,
// then waits (bounded by shutdownDrain) for workers to finish draining
// and sending in-flight packets. The shared context is only cancelled
// once that wait is over, whether because everything drained or
// because the grace period elapsed; cancelling stops the health prober
// and cuts loose any stragglers still mid-backoff. Cancelling earlier
// would race queue.Close() against ctx inside Queue.Take's select: if
// both become ready at once, a worker could exit via ctx.Done() while
// packets still sat in the buffered channel, leaving them uncounted.
func (d *Distributor) Stop() error {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return fmt.Errorf("distributor is not running")
	}
	d.isRunning = false
	d.mu.Unlock()

	d.queue.Close()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(d.shutdownDrain):
		d.logger.Warn("shutdown grace period elapsed with workers still active")
	}

	d.cancel()
	d.proberWG.Wait()
	d.dataClient.CloseIdleConnections()
	return nil
}

// SubmitPacket validates and enqueues a packet. Returns an error on
// validation failure or if the queue is full; the HTTP layer maps
// these to 422/503 respectively.
func (d *Distributor) SubmitPacket(packet models.LogPacket) error {
	if err := d.validator.ValidatePacket(packet); err != nil {
		return &ValidationError{Err: err}
	}

	switch d.queue.Offer(packet) {
	case interfaces.Accepted:
		return nil
	default:
		return ErrQueueFull
	}
}

// GetStats returns the current distributor statistics.
func (d *Distributor) GetStats() models.Stats {
	return d.registry.Stats()
}

// GetAnalyzers returns a snapshot of all configured analyzers.
func (d *Distributor) GetAnalyzers() []models.AnalyzerEntry {
	return d.registry.Snapshot()
}

// QueueSize returns the current ingress queue depth.
func (d *Distributor) QueueSize() int {
	return d.queue.Size()
}

// QueueCapacity returns the configured ingress queue bound.
func (d *Distributor) QueueCapacity() int {
	return config.QueueBuffer
}
