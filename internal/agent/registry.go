// Package agent runs one lightweight periodic worker per active user. The
// registry is the only shared structure; each worker owns its own loop and
// never touches another user's data.
package agent

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/clevelhire/platform/internal/models"
)

// TickFunc performs one bounded unit of work for a user. Errors are absorbed
// and logged at the worker level; they never stop the loop.
type TickFunc func(ctx context.Context, user models.AgentUser) error

// Registry tracks the running worker for each user id. Start is idempotent
// per user; StopAll cancels every worker and waits for them to drain so no
// tick can race store teardown.
type Registry struct {
	interval time.Duration
	tick     TickFunc
	logger   *slog.Logger

	mu      sync.Mutex
	workers map[string]*Worker
	wg      sync.WaitGroup
	stopped bool
}

func NewRegistry(interval time.Duration, tick TickFunc, logger *slog.Logger) *Registry {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		interval: interval,
		tick:     tick,
		logger:   logger,
		workers:  make(map[string]*Worker),
	}
}

// Start launches a worker for the user. Calling it again for the same user id
// is a no-op, so repeated startups cannot stack duplicate timers.
func (r *Registry) Start(user models.AgentUser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}
	if _, ok := r.workers[user.ID]; ok {
		return
	}

	w := newWorker(user, r.interval, r.tick, r.logger)
	r.workers[user.ID] = w

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		w.run()
	}()

	r.logger.Info("agent started",
		slog.String("user_id", user.ID),
		slog.Float64("target_salary", user.TargetSalary),
	)
}

// Count returns the number of tracked workers.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.workers)
}

// StopAll cancels every worker's timer, waits for in-flight ticks to finish
// and clears the registry. Call it before closing the store connection.
func (r *Registry) StopAll() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	for _, w := range r.workers {
		w.stop()
	}
	r.workers = make(map[string]*Worker)
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Info("all agents stopped")
}
