package agent

import (
	"context"

	"log/slog"

	"github.com/clevelhire/platform/pkg/repository"
)

// Orchestrator bootstraps the background subsystem at process start.
type Orchestrator struct {
	users    repository.UserRepo
	registry *Registry
	logger   *slog.Logger
}

func NewOrchestrator(users repository.UserRepo, registry *Registry, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{users: users, registry: registry, logger: logger}
}

// StartAllAgents loads the active-user set and starts one worker per user,
// returning the count started. "Active" is every registered account with no
// further filtering. Background automation is best effort: a store failure is
// logged and the process boots with zero workers instead of aborting.
func (o *Orchestrator) StartAllAgents(ctx context.Context) int {
	users, err := o.users.ListActiveUsers(ctx)
	if err != nil {
		o.logger.Error("load active users, starting no agents", slog.Any("err", err))
		return 0
	}

	for _, u := range users {
		o.registry.Start(u)
	}

	o.logger.Info("agent orchestrator started", slog.Int("agents", len(users)))

	return len(users)
}
