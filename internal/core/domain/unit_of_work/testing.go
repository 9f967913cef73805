package uow

import (
	"context"
	"credstore/internal/core/domain/credential"
	"credstore/internal/core/domain/record"
	"errors"
)

const (
	ResetTokenCollection = "auth_password_action"
	CredentialCollection = "auth_credentials"
)

var ErrFakeTxClosed = errors.New("transaction is already closed")

func NewFakeResetTokenStore() *record.FakeStore[credential.ResetToken] {
	return record.NewFakeStore(
		ResetTokenCollection,
		map[record.Field]func(credential.ResetToken) string{
			record.FieldID:     func(t credential.ResetToken) string { return string(t.ID) },
			record.FieldUserID: func(t credential.ResetToken) string { return string(t.UserID) },
		},
	)
}

func NewFakeCredentialStore() *record.FakeStore[credential.Credential] {
	return record.NewFakeStore(
		CredentialCollection,
		map[record.Field]func(credential.Credential) string{
			record.FieldID:     func(c credential.Credential) string { return string(c.ID) },
			record.FieldUserID: func(c credential.Credential) string { return string(c.UserID) },
		},
	)
}

type FakeUnitOfWorkContext struct {
	ResetTokenStore *record.FakeStore[credential.ResetToken]
	CredentialStore *record.FakeStore[credential.Credential]

	CommitError   error
	RollbackError error

	WasRollbackCalled bool
	WasCommitCalled   bool
	RollbackCount     int

	isClosed           bool
	resetTokenSnapshot record.FakeStoreSnapshot[credential.ResetToken]
	credentialSnapshot record.FakeStoreSnapshot[credential.Credential]
}

func NewFakeUnitOfWorkContext(
	resetTokenStore *record.FakeStore[credential.ResetToken],
	credentialStore *record.FakeStore[credential.Credential],
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		ResetTokenStore: resetTokenStore,
		CredentialStore: credentialStore,
	}
}

func (c *FakeUnitOfWorkContext) begin() {
	c.isClosed = false
	c.WasCommitCalled = false
	c.WasRollbackCalled = false
	c.resetTokenSnapshot = c.ResetTokenStore.Snapshot()
	c.credentialSnapshot = c.CredentialStore.Snapshot()
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	c.RollbackCount++
	if c.isClosed {
		return ErrFakeTxClosed
	}
	c.isClosed = true
	if c.RollbackError != nil {
		c.restore()
		return record.NewStorageError("", record.OpRollback, c.RollbackError)
	}
	c.restore()
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	if c.isClosed {
		return ErrFakeTxClosed
	}
	c.isClosed = true
	if c.CommitError != nil {
		c.restore()
		return record.NewStorageError("", record.OpCommit, c.CommitError)
	}
	return nil
}

// IsClosed reports whether Commit or Rollback has ended the transaction.
func (c *FakeUnitOfWorkContext) IsClosed() bool {
	return c.isClosed
}

func (c *FakeUnitOfWorkContext) ResetTokens() record.Store[credential.ResetToken] {
	return c.ResetTokenStore
}

func (c *FakeUnitOfWorkContext) Credentials() record.Store[credential.Credential] {
	return c.CredentialStore
}

func (c *FakeUnitOfWorkContext) restore() {
	c.ResetTokenStore.Restore(c.resetTokenSnapshot)
	c.CredentialStore.Restore(c.credentialSnapshot)
}

type FakeUnitOfWork struct {
	Context    *FakeUnitOfWorkContext
	BeginError error
	BeginCount int
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			NewFakeResetTokenStore(),
			NewFakeCredentialStore(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginError != nil {
		return nil, record.NewStorageError("", record.OpBegin, u.BeginError)
	}
	u.BeginCount++
	u.Context.begin()
	return u.Context, nil
}
