package migration

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Kargones/redmine2gitea/internal/entity/gitea"
)

// retryInitialInterval — начальная задержка экспоненциального backoff.
const retryInitialInterval = time.Second

// withRetry выполняет операцию записи с повторами.
// Повторяется только TARGET.RATE_LIMITED: остальные ошибки целевого API
// детерминированы и повтором не лечатся.
func (s *Service) withRetry(ctx context.Context, op string, fn func() error) error {
	attempt := 0
	operation := func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if gitea.IsRateLimited(err) {
			attempt++
			s.logger.Warn("Получен RATE_LIMITED, повтор операции",
				"operation", op,
				"attempt", attempt,
			)
			return err
		}
		return backoff.Permanent(err)
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = s.retryInitial
	policy := backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, uint64(s.retryMax)), ctx)

	return backoff.Retry(operation, policy)
}
