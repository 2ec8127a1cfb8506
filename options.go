package pqkem

import "runtime"

// schemeConfig holds configuration for a Scheme.
type schemeConfig struct {
	seedTrackingWindow int
}

// schedulerConfig holds configuration for a Scheduler.
type schedulerConfig struct {
	workers      int
	poolCapacity int
	audit        AuditFunc
}

func defaultSchedulerConfig() *schedulerConfig {
	return &schedulerConfig{
		workers:      runtime.GOMAXPROCS(0),
		poolCapacity: 2 * runtime.GOMAXPROCS(0),
	}
}

// SchemeOption configures a Scheme.
type SchemeOption func(*schemeConfig)

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*schedulerConfig)

// WithSeedReuseTracking enables detection of repeated key-generation and
// encapsulation seeds. The scheme remembers digests of the last window
// seeds it consumed and fails with ErrInsufficientEntropy if the random
// source ever replays one — a strong signal of a broken or cloned entropy
// source (for example a snapshotted VM). Disabled by default.
func WithSeedReuseTracking(window int) SchemeOption {
	return func(c *schemeConfig) {
		c.seedTrackingWindow = window
	}
}

// WithWorkers sets the number of worker goroutines executing submitted
// operations. Default: GOMAXPROCS.
func WithWorkers(count int) SchedulerOption {
	return func(c *schedulerConfig) {
		if count > 0 {
			c.workers = count
		}
	}
}

// WithPoolCapacity sets the number of reusable scratch buffers, which
// bounds the number of operations admitted at once. Submit blocks (and
// TrySubmit fails) when all buffers are in use, providing backpressure
// instead of unbounded growth. Default: 2 * GOMAXPROCS.
func WithPoolCapacity(capacity int) SchedulerOption {
	return func(c *schedulerConfig) {
		if capacity > 0 {
			c.poolCapacity = capacity
		}
	}
}

// WithAuditHook installs a callback invoked after every completed operation
// with its kind, duration, and outcome. The hook is never handed key bytes
// or secrets, and it runs on the worker goroutine: keep it fast or hand off.
func WithAuditHook(fn AuditFunc) SchedulerOption {
	return func(c *schedulerConfig) {
		c.audit = fn
	}
}
