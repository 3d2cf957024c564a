package job

import (
	"context"
	"errors"
)

// Healthcheck returns a check for health.Checks that pings the job
// database.
func (e *Enqueuer) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if err := e.pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
