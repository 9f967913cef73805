package uow

import (
	"context"
	"credstore/internal/core/domain/credential"
	"credstore/internal/core/domain/record"
	"fmt"
)

// Context is an open transaction. Exactly one of Commit or Rollback must be
// called before it is discarded.
type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	ResetTokens() record.Store[credential.ResetToken]
	Credentials() record.Store[credential.Credential]
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}

// RollbackError is returned when undoing a transaction failed. Err is the
// rollback failure, Cause is what triggered the rollback (nil if the
// transaction was being abandoned without a failure).
type RollbackError struct {
	Cause error
	Err   error
}

func (e *RollbackError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("rollback failed: %v", e.Err)
	}
	return fmt.Sprintf("rollback failed: %v (rolled back due to: %v)", e.Err, e.Cause)
}

func (e *RollbackError) Unwrap() error {
	return e.Err
}
