// Package services contains the server-side business logic: the account flow
// (login, signup, logout) and the role-scoped data access operations the
// dashboard pages call.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/config"
	"github.com/sethvargo/go-retry"
)

// storeCtx bounds a single external-store call with StoreTimeout.
func storeCtx(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.StoreTimeout)
}

// readWithRetry runs an idempotent read with bounded exponential backoff.
// Writes are never retried; each attempt gets its own timeout.
func readWithRetry(ctx context.Context, cfg *config.Config, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(cfg.ReadRetries, retry.NewExponential(100*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attemptCtx, cancel := storeCtx(ctx, cfg)
		defer cancel()
		err := fn(attemptCtx)
		if err == nil {
			return nil
		}
		// A clean miss is an answer, not a transient failure.
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return retry.RetryableError(err)
	})
}

// storeErr translates a repository failure into the service taxonomy,
// keeping timeouts distinguishable from other store errors.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", common.ErrStoreTimeout, err)
	}
	return fmt.Errorf("%w: %v", common.ErrStore, err)
}
