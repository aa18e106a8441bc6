package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DispatcherConfig configures the detached dispatcher
type DispatcherConfig struct {
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

// job is one queued delivery
type job struct {
	id      string
	path    string
	payload interface{}
}

// Dispatcher delivers payloads to the collection API off the intake path.
// Delivery is fire-and-forget: a full buffer drops the payload, the outcome
// is only logged, and nothing ever propagates back to the caller. Retries
// are supported but disabled by default so the agent cannot accidentally
// amplify a struggling remote.
type Dispatcher struct {
	poster Poster
	jobs   chan job
	config DispatcherConfig
	log    *zap.Logger
}

// NewDispatcher creates a new dispatcher in front of poster
func NewDispatcher(poster Poster, config DispatcherConfig, log *zap.Logger) *Dispatcher {
	if config.BufferSize <= 0 {
		config.BufferSize = 100
	}

	return &Dispatcher{
		poster: poster,
		jobs:   make(chan job, config.BufferSize),
		config: config,
		log:    log,
	}
}

// Enqueue queues payload for delivery to path without blocking
func (d *Dispatcher) Enqueue(path string, payload interface{}) {
	j := job{
		id:      uuid.NewString(),
		path:    path,
		payload: payload,
	}

	select {
	case d.jobs <- j:
		d.log.Debug("Dispatch queued",
			zap.String("dispatch_id", j.id),
			zap.String("path", path))
	default:
		d.log.Warn("Dispatch buffer full, dropping payload",
			zap.String("dispatch_id", j.id),
			zap.String("path", path))
	}
}

// Start runs the delivery loop until ctx is cancelled
func (d *Dispatcher) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.log.Info("Dispatcher shutting down",
				zap.Int("pending", len(d.jobs)))
			return
		case j := <-d.jobs:
			d.deliver(ctx, j)
		}
	}
}

// deliver posts one job, retrying up to the configured cap
func (d *Dispatcher) deliver(ctx context.Context, j job) {
	for attempt := 0; ; attempt++ {
		err := d.poster.Post(ctx, j.path, j.payload)
		if err == nil {
			d.log.Debug("Dispatch delivered",
				zap.String("dispatch_id", j.id),
				zap.String("path", j.path),
				zap.Int("attempt", attempt+1))
			return
		}

		if attempt >= d.config.MaxRetries {
			d.log.Error("Dispatch failed",
				zap.String("dispatch_id", j.id),
				zap.String("path", j.path),
				zap.Int("attempts", attempt+1),
				zap.Error(err))
			return
		}

		d.log.Warn("Dispatch attempt failed, retrying",
			zap.String("dispatch_id", j.id),
			zap.String("path", j.path),
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(d.config.RetryDelay):
		}
	}
}
