package cron

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status is the outcome of a job's latest run.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
)

// Job is a background task run on a fixed interval.
type Job struct {
	Name        string
	Description string
	Interval    time.Duration
	Fn          func(ctx context.Context) error
}

type state struct {
	job     Job
	mu      sync.Mutex
	status  Status
	message string
	lastRun *time.Time
	nextRun time.Time
}

// Item is the serializable form of a job.
type Item struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Message     string     `json:"message,omitempty"`
	NextRunAt   time.Time  `json:"next_run_at"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
}

// Scheduler runs registered jobs until its context is cancelled.
type Scheduler struct {
	mu     sync.RWMutex
	jobs   map[string]*state
	logger *zap.Logger
}

// New creates an empty Scheduler. A nil logger discards logs.
func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{jobs: make(map[string]*state), logger: logger.Named("cron")}
}

// Register adds a job. Jobs registered after Start are not scheduled.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.Name] = &state{job: job, status: StatusIdle, nextRun: time.Now().Add(job.Interval)}
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.jobs {
		go s.loop(ctx, st)
	}
}

func (s *Scheduler) loop(ctx context.Context, st *state) {
	ticker := time.NewTicker(st.job.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.execute(ctx, st)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, st *state) {
	st.mu.Lock()
	if st.status == StatusRunning {
		st.mu.Unlock()
		return
	}
	st.status = StatusRunning
	st.mu.Unlock()

	started := time.Now()
	err := st.job.Fn(ctx)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.lastRun = &started
	st.nextRun = time.Now().Add(st.job.Interval)
	if err != nil {
		st.status = StatusFailed
		st.message = err.Error()
		s.logger.Warn("job failed", zap.String("job", st.job.Name), zap.Error(err))
		return
	}
	st.status = StatusOK
	st.message = ""
	s.logger.Debug("job done", zap.String("job", st.job.Name), zap.Duration("took", time.Since(started)))
}

// Run executes a job synchronously.
func (s *Scheduler) Run(ctx context.Context, name string) error {
	s.mu.RLock()
	st, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %q not found", name)
	}
	s.execute(ctx, st)
	return nil
}

// List returns every job ordered by name.
func (s *Scheduler) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Item, 0, len(s.jobs))
	for _, st := range s.jobs {
		st.mu.Lock()
		items = append(items, Item{
			Name:        st.job.Name,
			Description: st.job.Description,
			Status:      st.status,
			Message:     st.message,
			NextRunAt:   st.nextRun,
			LastRunAt:   st.lastRun,
		})
		st.mu.Unlock()
	}
	slices.SortFunc(items, func(a, b Item) int { return strings.Compare(a.Name, b.Name) })
	return items
}
