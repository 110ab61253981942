package syncqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/eventbus"
	"github.com/Hamid-ijaz/mindmate/pkg/observability"
	"github.com/sony/gobreaker/v2"
)

// ProcessorConfig tunes the background dispatch loop.
type ProcessorConfig struct {
	PollInterval     time.Duration
	BatchSize        int
	MaxRetries       int
	RetryBackoffBase time.Duration
	RetryBackoffMax  time.Duration

	// BreakerThreshold is the number of consecutive delivery failures that
	// opens the circuit. BreakerCooldown is how long the circuit stays open
	// before probing the broker again.
	BreakerThreshold uint32
	BreakerCooldown  time.Duration

	// Retention is how long dispatched messages are kept before the sweep
	// deletes them. Zero disables sweeping.
	Retention time.Duration
}

// DefaultProcessorConfig returns sensible defaults for the dispatch loop.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		PollInterval:     5 * time.Second,
		BatchSize:        50,
		MaxRetries:       5,
		RetryBackoffBase: 30 * time.Second,
		RetryBackoffMax:  30 * time.Minute,
		BreakerThreshold: 5,
		BreakerCooldown:  time.Minute,
		Retention:        14 * 24 * time.Hour,
	}
}

// sweepInterval spaces out retention sweeps; deleting dispatched rows on
// every poll would be wasted work.
const sweepInterval = time.Hour

// ProcessorStats counts dispatch outcomes since the processor started.
type ProcessorStats struct {
	Processed  int64
	Dispatched int64
	Failed     int64
	Dead       int64
}

// Processor drains the sync queue in the background, publishing each queued
// event to the broker. Deliveries run through a circuit breaker so a dead
// broker does not burn retry budget on every poll.
type Processor struct {
	repo      Repository
	publisher eventbus.Publisher
	config    ProcessorConfig
	logger    *slog.Logger
	metrics   observability.Metrics
	breaker   *gobreaker.CircuitBreaker[any]

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup

	statsMu sync.Mutex
	stats   ProcessorStats

	sweepMu   sync.Mutex
	lastSweep time.Time
}

// NewProcessor creates a sync queue processor.
func NewProcessor(repo Repository, publisher eventbus.Publisher, config ProcessorConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}

	threshold := config.BreakerThreshold
	if threshold == 0 {
		threshold = 5
	}

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "sync-publisher",
		Timeout: config.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("sync circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &Processor{
		repo:      repo,
		publisher: publisher,
		config:    config,
		logger:    logger,
		metrics:   observability.NoopMetrics{},
		breaker:   breaker,
	}
}

// SetMetrics replaces the metrics recorder. Defaults to a no-op.
func (p *Processor) SetMetrics(m observability.Metrics) {
	if m != nil {
		p.metrics = m
	}
}

// Start launches the background dispatch loop.
func (p *Processor) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return errors.New("processor already running")
	}

	p.running = true
	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.run(ctx)

	p.logger.Info("sync processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize,
	)
	return nil
}

// Stop halts the dispatch loop and waits for in-flight work to finish.
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("sync processor stopped")
}

// IsRunning reports whether the dispatch loop is active.
func (p *Processor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Processor) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				p.logger.Error("sync batch failed", "error", err)
			}
		}
	}
}

// ProcessOnce drains a single batch immediately. Used by the flush command
// and by tests.
func (p *Processor) ProcessOnce(ctx context.Context) error {
	return p.processBatch(ctx)
}

func (p *Processor) processBatch(ctx context.Context) error {
	timer := observability.StartTimer("sync.batch").WithMetrics(p.metrics)
	defer timer.Stop()

	messages, err := p.repo.GetPending(ctx, p.config.BatchSize)
	if err != nil {
		return fmt.Errorf("get pending messages: %w", err)
	}

	for _, msg := range messages {
		if err := p.processMessage(ctx, msg); err != nil {
			// When the circuit is open the broker is down; the rest of
			// the batch would fail the same way.
			if errors.Is(err, gobreaker.ErrOpenState) {
				p.logger.Warn("sync circuit open, deferring batch")
				return nil
			}
		}
	}

	p.sweepDispatched(ctx)
	return nil
}

// sweepDispatched deletes dispatched messages older than the retention
// window, at most once per sweepInterval.
func (p *Processor) sweepDispatched(ctx context.Context) {
	if p.config.Retention <= 0 {
		return
	}

	p.sweepMu.Lock()
	due := time.Since(p.lastSweep) >= sweepInterval
	if due {
		p.lastSweep = time.Now()
	}
	p.sweepMu.Unlock()
	if !due {
		return
	}

	deleted, err := p.repo.DeleteDispatched(ctx, p.config.Retention)
	if err != nil {
		p.logger.Error("failed to sweep dispatched messages", "error", err)
		return
	}
	if deleted > 0 {
		p.logger.Info("swept dispatched messages",
			"deleted", deleted,
			"retention", p.config.Retention,
		)
	}
}

func (p *Processor) processMessage(ctx context.Context, msg *Message) error {
	p.recordProcessed()

	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.publisher.Publish(ctx, msg.RoutingKey, msg.Payload)
	})
	if err == nil {
		p.recordDispatched()
		p.metrics.Counter(observability.MetricSyncDispatched, 1)
		if markErr := p.repo.MarkDispatched(ctx, msg.ID); markErr != nil {
			p.logger.Error("failed to mark message dispatched",
				"message_id", msg.ID,
				"error", markErr,
			)
			return markErr
		}
		p.logger.Debug("sync message dispatched",
			"message_id", msg.ID,
			"routing_key", msg.RoutingKey,
		)
		return nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) {
		// Not an attempt against the broker; leave the message untouched.
		return err
	}

	if msg.RetryCount+1 >= p.config.MaxRetries {
		p.recordDead()
		p.metrics.Counter(observability.MetricSyncDead, 1)
		reason := fmt.Sprintf("delivery failed after %d attempts: %v", msg.RetryCount+1, err)
		if markErr := p.repo.MarkDead(ctx, msg.ID, reason); markErr != nil {
			p.logger.Error("failed to dead-letter message",
				"message_id", msg.ID,
				"error", markErr,
			)
			return markErr
		}
		p.logger.Warn("sync message dead-lettered",
			"message_id", msg.ID,
			"routing_key", msg.RoutingKey,
			"retry_count", msg.RetryCount+1,
		)
		return err
	}

	p.recordFailed()
	p.metrics.Counter(observability.MetricSyncFailed, 1)
	nextRetry := time.Now().Add(p.backoff(msg.RetryCount + 1))
	if markErr := p.repo.MarkFailed(ctx, msg.ID, err.Error(), nextRetry); markErr != nil {
		p.logger.Error("failed to mark message failed",
			"message_id", msg.ID,
			"error", markErr,
		)
		return markErr
	}
	p.logger.Warn("sync message delivery failed, retry scheduled",
		"message_id", msg.ID,
		"routing_key", msg.RoutingKey,
		"retry_count", msg.RetryCount+1,
		"next_retry_at", nextRetry,
	)
	return err
}

// backoff returns base * 2^(attempt-1), capped at the configured maximum.
func (p *Processor) backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := time.Duration(float64(p.config.RetryBackoffBase) * math.Pow(2, float64(attempt-1)))
	if d > p.config.RetryBackoffMax || d <= 0 {
		return p.config.RetryBackoffMax
	}
	return d
}

// Stats returns dispatch counters since the processor was created.
func (p *Processor) Stats() ProcessorStats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

func (p *Processor) recordProcessed() {
	p.statsMu.Lock()
	p.stats.Processed++
	p.statsMu.Unlock()
}

func (p *Processor) recordDispatched() {
	p.statsMu.Lock()
	p.stats.Dispatched++
	p.statsMu.Unlock()
}

func (p *Processor) recordFailed() {
	p.statsMu.Lock()
	p.stats.Failed++
	p.statsMu.Unlock()
}

func (p *Processor) recordDead() {
	p.statsMu.Lock()
	p.stats.Dead++
	p.statsMu.Unlock()
}
