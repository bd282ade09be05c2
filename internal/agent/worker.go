package agent

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"log/slog"

	"github.com/clevelhire/platform/internal/models"
)

// Worker is one user's periodic loop. Ticks are strictly sequential: the next
// tick cannot fire while the previous one is still running, so two ticks never
// mutate the same settings row concurrently.
type Worker struct {
	user     models.AgentUser
	interval time.Duration
	tick     TickFunc
	logger   *slog.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	lastTick atomic.Int64
}

func newWorker(user models.AgentUser, interval time.Duration, tick TickFunc, logger *slog.Logger) *Worker {
	return &Worker{
		user:     user,
		interval: interval,
		tick:     tick,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (w *Worker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.runTick()
		}
	}
}

// runTick executes one unit of work. Failure isolation is the whole contract:
// a panic or error inside a tick is caught and logged here and the ticker
// keeps re-arming, so one user's fault can never reach the registry or any
// other worker. Each tick also gets a deadline of one interval, bounding a
// stuck store call.
func (w *Worker) runTick() {
	defer func() {
		if rec := recover(); rec != nil {
			w.logger.Error("agent tick panic",
				slog.String("user_id", w.user.ID),
				slog.Any("panic", rec),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	w.lastTick.Store(time.Now().UTC().UnixMilli())

	if err := w.tick(ctx, w.user); err != nil {
		w.logger.Error("agent tick failed",
			slog.String("user_id", w.user.ID),
			slog.Any("err", err),
		)
	}
}

// LastTick returns the start of the most recent tick in UTC millis, zero if
// the worker has not ticked yet.
func (w *Worker) LastTick() int64 {
	return w.lastTick.Load()
}

func (w *Worker) stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}
