package uow

import (
	"context"
	"credstore/internal/core/domain/credential"
	e "credstore/internal/core/domain/errors"
	"credstore/internal/core/domain/record"
	uow "credstore/internal/core/domain/unit_of_work"
	dbrecord "credstore/internal/db/record"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type pgxUnitOfWorkContext struct {
	tx              pgx.Tx
	rollbackTimeout time.Duration
}

func newPgxUnitOfWorkContext(tx pgx.Tx, rollbackTimeout time.Duration) *pgxUnitOfWorkContext {
	return &pgxUnitOfWorkContext{
		tx:              tx,
		rollbackTimeout: rollbackTimeout,
	}
}

func (c *pgxUnitOfWorkContext) Commit(ctx context.Context) error {
	if err := c.tx.Commit(ctx); err != nil {
		return record.NewStorageError("", record.OpCommit, err)
	}
	return nil
}

// Rollback is not bound to the caller's cancellation so that an abandoned
// request still returns its connection to the pool.
func (c *pgxUnitOfWorkContext) Rollback(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.rollbackTimeout)
	defer cancel()
	if err := c.tx.Rollback(ctx); err != nil {
		return record.NewStorageError("", record.OpRollback, err)
	}
	return nil
}

func (c *pgxUnitOfWorkContext) ResetTokens() record.Store[credential.ResetToken] {
	return dbrecord.NewPgxResetTokenStore(c.tx)
}

func (c *pgxUnitOfWorkContext) Credentials() record.Store[credential.Credential] {
	return dbrecord.NewPgxCredentialStore(c.tx)
}

type PgxUnitOfWork struct {
	db              *pgxpool.Pool
	rollbackTimeout time.Duration
}

func NewPgxUnitOfWork(db *pgxpool.Pool, rollbackTimeout time.Duration) *PgxUnitOfWork {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUnitOfWork{db: db, rollbackTimeout: rollbackTimeout}
}

func (u *PgxUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, record.NewStorageError("", record.OpBegin, err)
	}
	return newPgxUnitOfWorkContext(tx, u.rollbackTimeout), nil
}
