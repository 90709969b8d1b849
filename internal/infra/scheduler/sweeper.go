// Package scheduler runs periodic cleanup of expired sessions and tickets.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"identity/config"
	"identity/internal/domain/lifecycle"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/multierr"
)

const (
	defaultVerificationSpec  = "@hourly"
	defaultSessionSpec       = "@daily"
	defaultPasswordResetSpec = "@hourly"
	defaultSessionRetention  = 30 * 24 * time.Hour
	defaultJobTimeout        = time.Minute
)

// Job is one cleanup routine. Run returns how many rows it removed.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper schedules cleanup jobs on a cron timer. A failing job is logged and
// simply runs again at its next tick.
type Sweeper struct {
	jobs       []Job
	cron       *cron.Cron
	now        func() time.Time
	jobTimeout time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	started bool
}

// Option customises the Sweeper.
type Option func(*Sweeper)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(s *Sweeper) {
		if c != nil {
			s.cron = c
		}
	}
}

// WithNow overrides the clock passed to jobs.
func WithNow(now func() time.Time) Option {
	return func(s *Sweeper) {
		if now != nil {
			s.now = now
		}
	}
}

// WithJobTimeout bounds a single job run.
func WithJobTimeout(timeout time.Duration) Option {
	return func(s *Sweeper) {
		if timeout > 0 {
			s.jobTimeout = timeout
		}
	}
}

// New creates a Sweeper for the given jobs.
func New(jobs []Job, logger *slog.Logger, opts ...Option) *Sweeper {
	sweeper := &Sweeper{
		jobs:       jobs,
		now:        time.Now,
		jobTimeout: defaultJobTimeout,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(sweeper)
	}

	if sweeper.cron == nil {
		cronLog := cronLogger{logger: logger}
		// A panicking job is logged and the scheduler keeps running.
		sweeper.cron = cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog)))
	}

	return sweeper
}

// Start registers every job with the scheduler and launches it.
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	for _, job := range s.jobs {
		if _, err := s.cron.AddFunc(job.Spec, func() {
			if _, err := s.run(context.Background(), job); err != nil {
				s.logger.Warn("Cleanup job failed", slog.String("job", job.Name), slog.Any("error", err))
			}
		}); err != nil {
			return errors.Wrapf(err, "invalid schedule %q for %s", job.Spec, job.Name)
		}
	}

	s.cron.Start()
	s.started = true
	s.logger.Info("Sweeper started", slog.Int("jobs", len(s.jobs)))

	return nil
}

// Stop halts the scheduler. The returned context is done once running jobs finish.
func (s *Sweeper) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce executes every job sequentially and joins their errors.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	var errs error

	for _, job := range s.jobs {
		if _, err := s.run(ctx, job); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, job.Name))
		}
	}

	return errs
}

func (s *Sweeper) run(ctx context.Context, job Job) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	removed, err := job.Run(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("Cleanup job removed rows", slog.String("job", job.Name), slog.Int64("removed", removed))
	}

	return removed, nil
}

// Params holds dependencies for the Sweeper, injected by Fx.
type Params struct {
	fx.In

	Lc           fx.Lifecycle
	Config       *config.Config
	Sessions     usecase.RefreshTokenStore
	Verification usecase.EmailVerificationManager
	Authority    usecase.IdentityAuthority
	Logger       *slog.Logger
}

// NewSweeper builds the cleanup jobs from config and ties the scheduler to the app lifecycle.
func NewSweeper(params Params) *Sweeper {
	cfg := params.Config.Sweeper
	if cfg == nil {
		cfg = &config.SweeperConfig{Enabled: true}
	}

	retention := cfg.SessionRetention
	if retention <= 0 {
		retention = defaultSessionRetention
	}

	jobs := []Job{
		{
			Name: "verification-tickets",
			Spec: specOrDefault(cfg.VerificationSchedule, defaultVerificationSpec),
			Run:  params.Verification.SweepExpired,
		},
		{
			Name: "refresh-sessions",
			Spec: specOrDefault(cfg.SessionSchedule, defaultSessionSpec),
			Run: func(ctx context.Context, now time.Time) (int64, error) {
				return params.Sessions.PurgeExpired(ctx, now.Add(-retention))
			},
		},
		{
			Name: "password-reset-tickets",
			Spec: specOrDefault(cfg.PasswordResetSchedule, defaultPasswordResetSpec),
			Run:  params.Authority.SweepExpiredPasswordResets,
		},
	}

	sweeper := New(jobs, params.Logger.With(slog.String("component", "sweeper")))

	if !cfg.Enabled {
		params.Logger.Info("Sweeper disabled")

		return sweeper
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return sweeper.Start()
		},
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			select {
			case <-sweeper.Stop().Done():
				return nil
			case <-stopCtx.Done():
				return errors.Wrap(stopCtx.Err(), "sweeper did not stop in time")
			}
		},
	})

	return sweeper
}

func specOrDefault(spec, fallback string) string {
	if spec == "" {
		return fallback
	}

	return spec
}
