package api

import (
	"context"
	"sync/atomic"
)

// WorkerPool bounds concurrent request processing. Game commands are
// cheap and get a wide pool; self-play simulations burn CPU for seconds
// and get a narrow one.
type WorkerPool struct {
	commandSem      chan struct{}
	simulateSem     chan struct{}
	queuedCommands  int64
	queuedSimulates int64
	activeCommands  int64
	activeSimulates int64
	totalCommands   int64
	totalSimulates  int64
}

// PoolConfig configures the worker pool.
type PoolConfig struct {
	MaxCommandWorkers  int // Max concurrent game commands (default: 100)
	MaxSimulateWorkers int // Max concurrent self-play runs (default: 4)
}

// DefaultPoolConfig returns a PoolConfig with sensible defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxCommandWorkers:  100,
		MaxSimulateWorkers: 4,
	}
}

// NewWorkerPool creates a new worker pool with the given configuration.
func NewWorkerPool(config PoolConfig) *WorkerPool {
	if config.MaxCommandWorkers <= 0 {
		config.MaxCommandWorkers = 100
	}
	if config.MaxSimulateWorkers <= 0 {
		config.MaxSimulateWorkers = 4
	}

	return &WorkerPool{
		commandSem:  make(chan struct{}, config.MaxCommandWorkers),
		simulateSem: make(chan struct{}, config.MaxSimulateWorkers),
	}
}

// AcquireCommand acquires a slot for a game command.
// Returns an error if the context is cancelled while waiting.
func (p *WorkerPool) AcquireCommand(ctx context.Context) error {
	atomic.AddInt64(&p.queuedCommands, 1)
	defer atomic.AddInt64(&p.queuedCommands, -1)

	select {
	case p.commandSem <- struct{}{}:
		atomic.AddInt64(&p.activeCommands, 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseCommand releases a game command slot.
func (p *WorkerPool) ReleaseCommand() {
	atomic.AddInt64(&p.activeCommands, -1)
	atomic.AddInt64(&p.totalCommands, 1)
	<-p.commandSem
}

// AcquireSimulate acquires a slot for a self-play run.
// Returns an error if the context is cancelled while waiting.
func (p *WorkerPool) AcquireSimulate(ctx context.Context) error {
	atomic.AddInt64(&p.queuedSimulates, 1)
	defer atomic.AddInt64(&p.queuedSimulates, -1)

	select {
	case p.simulateSem <- struct{}{}:
		atomic.AddInt64(&p.activeSimulates, 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseSimulate releases a self-play slot.
func (p *WorkerPool) ReleaseSimulate() {
	atomic.AddInt64(&p.activeSimulates, -1)
	atomic.AddInt64(&p.totalSimulates, 1)
	<-p.simulateSem
}

// TryAcquireSimulate tries to acquire a self-play slot without blocking.
// Returns true if acquired, false if the pool is full.
func (p *WorkerPool) TryAcquireSimulate() bool {
	select {
	case p.simulateSem <- struct{}{}:
		atomic.AddInt64(&p.activeSimulates, 1)
		return true
	default:
		return false
	}
}

// PoolStats is a snapshot of pool activity.
type PoolStats struct {
	ActiveCommands  int64 `json:"active_commands"`
	ActiveSimulates int64 `json:"active_simulates"`
	QueuedCommands  int64 `json:"queued_commands"`
	QueuedSimulates int64 `json:"queued_simulates"`
	TotalCommands   int64 `json:"total_commands"`
	TotalSimulates  int64 `json:"total_simulates"`
	MaxCommands     int   `json:"max_commands"`
	MaxSimulates    int   `json:"max_simulates"`
}

// Stats returns current pool statistics.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		ActiveCommands:  atomic.LoadInt64(&p.activeCommands),
		ActiveSimulates: atomic.LoadInt64(&p.activeSimulates),
		QueuedCommands:  atomic.LoadInt64(&p.queuedCommands),
		QueuedSimulates: atomic.LoadInt64(&p.queuedSimulates),
		TotalCommands:   atomic.LoadInt64(&p.totalCommands),
		TotalSimulates:  atomic.LoadInt64(&p.totalSimulates),
		MaxCommands:     cap(p.commandSem),
		MaxSimulates:    cap(p.simulateSem),
	}
}
