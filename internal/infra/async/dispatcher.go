// Package async runs background tasks on a bounded worker pool.
package async

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"identity/config"
	"identity/internal/domain/lifecycle"
	"identity/internal/domain/service"

	"go.uber.org/fx"
)

const (
	defaultWorkers     = 4
	defaultQueueSize   = 256
	defaultTaskTimeout = 30 * time.Second
)

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// Dispatcher is a bounded queue drained by a fixed number of workers.
// Delivery is at-most-once: tasks are dropped when the queue is full or closed.
type Dispatcher struct {
	queue   chan task
	workers int
	timeout time.Duration
	logger  *slog.Logger

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

// New creates a dispatcher. Non-positive sizes fall back to defaults.
func New(workers, queueSize int, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		queue:   make(chan task, queueSize),
		workers: workers,
		timeout: timeout,
		logger:  logger,
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Start launches the workers. Tasks enqueued earlier run once workers are up.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	for range d.workers {
		d.wg.Add(1)
		go d.work()
	}
}

// Go implements service.Dispatcher.
func (d *Dispatcher) Go(name string, fn func(ctx context.Context) error) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Dispatcher stopped, dropping task", slog.String("task", name))

		return false
	}

	select {
	case d.queue <- task{name: name, fn: fn}:
		return true
	default:
		d.logger.Warn("Dispatcher queue full, dropping task",
			slog.String("task", name),
			slog.Int("queueSize", cap(d.queue)),
		)

		return false
	}
}

// Stop refuses new tasks and waits for queued ones until ctx is done,
// after which running tasks see their context cancelled.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()

		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		d.cancel()

		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()

		return nil
	case <-ctx.Done():
		d.cancel()
		d.logger.Warn("Dispatcher stopped before draining its queue", slog.Int("pending", len(d.queue)))

		return ctx.Err()
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()

	for t := range d.queue {
		d.run(t)
	}
}

func (d *Dispatcher) run(t task) {
	ctx, cancel := context.WithTimeout(d.baseCtx, d.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Background task panicked",
				slog.String("task", t.name),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	if err := t.fn(ctx); err != nil {
		d.logger.Warn("Background task failed",
			slog.String("task", t.name),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err),
		)

		return
	}

	d.logger.Debug("Background task done", slog.String("task", t.name), slog.Duration("elapsed", time.Since(start)))
}

// Params holds dependencies for NewDispatcher, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewDispatcher builds the dispatcher from config and ties it to the app lifecycle.
func NewDispatcher(params Params) service.Dispatcher {
	cfg := params.Config.Dispatcher
	if cfg == nil {
		cfg = &config.DispatcherConfig{}
	}

	dispatcher := New(cfg.Workers, cfg.QueueSize, cfg.TaskTimeout, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			dispatcher.Start()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return dispatcher.Stop(ctx)
		},
	})

	return dispatcher
}
