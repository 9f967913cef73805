package resetpassword

import (
	"context"
	c "credstore/internal/core/domain/common"
	"credstore/internal/core/domain/credential"
	"credstore/internal/core/domain/logging"
	"credstore/internal/core/domain/record"
	uow "credstore/internal/core/domain/unit_of_work"
	"fmt"
)

type state int

const (
	stateStart state = iota
	stateTokenFound
	stateCredentialFound
	stateCredentialReplaced
	stateTokenConsumed
	stateCommitted
)

var stateNames = [...]string{
	stateStart:              "start",
	stateTokenFound:         "token found",
	stateCredentialFound:    "credential found",
	stateCredentialReplaced: "credential replaced",
	stateTokenConsumed:      "token consumed",
	stateCommitted:          "committed",
}

func (s state) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// verdict is the outcome of a single transition.
type verdict int

const (
	advance verdict = iota
	stop
	fail
)

// rotation replaces the credential of the token owner and consumes the token
// inside one transaction. Every exit other than a successful commit rolls the
// transaction back.
type rotation struct {
	log     logging.Logger
	deriver credential.SecretDeriver
	tx      uow.Context
	input   Input

	state    state
	token    credential.ResetToken
	current  credential.Credential
	isClosed bool
}

func newRotation(
	log logging.Logger,
	deriver credential.SecretDeriver,
	tx uow.Context,
	input Input,
) *rotation {
	return &rotation{
		log:     log,
		deriver: deriver,
		tx:      tx,
		input:   input,
		state:   stateStart,
	}
}

func (r *rotation) run(ctx context.Context) (c.Optional[credential.ResetToken], error) {
	for r.state != stateCommitted {
		v, err := r.step(ctx)
		switch v {
		case advance:
			continue
		case stop:
			return c.None[credential.ResetToken](), r.abort(ctx, nil)
		default:
			return c.None[credential.ResetToken](), r.abort(ctx, err)
		}
	}
	return c.Some(r.token), nil
}

func (r *rotation) step(ctx context.Context) (verdict, error) {
	switch r.state {
	case stateStart:
		return r.findToken(ctx)
	case stateTokenFound:
		return r.findCredential(ctx)
	case stateCredentialFound:
		return r.replaceCredential(ctx)
	case stateCredentialReplaced:
		return r.consumeToken(ctx)
	case stateTokenConsumed:
		return r.commit(ctx)
	default:
		panic(fmt.Sprintf("no transition from rotation state %s", r.state))
	}
}

func (r *rotation) findToken(ctx context.Context) (verdict, error) {
	token, err := r.tx.ResetTokens().FindOne(ctx, record.FieldID, string(r.input.TokenID))
	if err != nil {
		r.log.Error(
			ctx,
			"Could not get password reset token.",
			logging.Entry("tokenID", r.input.TokenID),
			logging.Entry("err", err),
		)
		return fail, err
	}
	if !token.IsPresent {
		r.log.Info(ctx, "Password reset token not found.", logging.Entry("tokenID", r.input.TokenID))
		return stop, nil
	}
	r.token = token.Value
	r.state = stateTokenFound
	return advance, nil
}

func (r *rotation) findCredential(ctx context.Context) (verdict, error) {
	cred, err := r.tx.Credentials().FindOne(ctx, record.FieldUserID, string(r.token.UserID))
	if err != nil {
		r.log.Error(
			ctx,
			"Could not get user credential.",
			logging.Entry("userID", r.token.UserID),
			logging.Entry("err", err),
		)
		return fail, err
	}
	if !cred.IsPresent {
		r.log.Info(ctx, "Credential not found for password reset.", logging.Entry("userID", r.token.UserID))
		return stop, nil
	}
	r.current = cred.Value
	r.state = stateCredentialFound
	return advance, nil
}

// replaceCredential deletes the current credential and inserts a new one under
// the same id with a freshly derived salt and hash.
func (r *rotation) replaceCredential(ctx context.Context) (verdict, error) {
	salt, hash, err := r.deriver.Derive(r.input.NewPassword)
	if err != nil {
		r.log.Error(
			ctx,
			"Could not derive new password hash.",
			logging.Entry("userID", r.current.UserID),
			logging.Entry("err", err),
		)
		return fail, err
	}
	replacement := r.current.WithSecret(salt, hash)

	credentials := r.tx.Credentials()
	deleted, err := credentials.Delete(ctx, record.FieldID, string(r.current.ID))
	if err != nil {
		r.log.Error(
			ctx,
			"Could not delete user credential.",
			logging.Entry("credentialID", r.current.ID),
			logging.Entry("err", err),
		)
		return fail, err
	}
	if deleted == 0 {
		r.log.Info(ctx, "Credential vanished during password reset.", logging.Entry("credentialID", r.current.ID))
		return stop, nil
	}

	savedID, err := credentials.Save(ctx, string(r.current.ID), replacement)
	if err == nil && savedID != string(r.current.ID) {
		err = record.NewStorageError(
			"",
			record.OpSave,
			fmt.Errorf("%w: got %q, want %q", record.ErrIDMismatch, savedID, r.current.ID),
		)
	}
	if err != nil {
		r.log.Error(
			ctx,
			"Could not save new user credential.",
			logging.Entry("credentialID", r.current.ID),
			logging.Entry("err", err),
		)
		return fail, err
	}
	r.state = stateCredentialReplaced
	return advance, nil
}

func (r *rotation) consumeToken(ctx context.Context) (verdict, error) {
	deleted, err := r.tx.ResetTokens().Delete(ctx, record.FieldID, string(r.token.ID))
	if err != nil {
		r.log.Error(
			ctx,
			"Could not delete password reset token.",
			logging.Entry("tokenID", r.token.ID),
			logging.Entry("err", err),
		)
		return fail, err
	}
	if deleted == 0 {
		r.log.Info(ctx, "Password reset token vanished during password reset.", logging.Entry("tokenID", r.token.ID))
		return stop, nil
	}
	r.state = stateTokenConsumed
	return advance, nil
}

func (r *rotation) commit(ctx context.Context) (verdict, error) {
	err := r.tx.Commit(ctx)
	r.isClosed = true
	if err != nil {
		r.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("tokenID", r.token.ID),
			logging.Entry("err", err),
		)
		return fail, err
	}
	r.state = stateCommitted
	return advance, nil
}

// abort rolls the transaction back. The cause is returned when the rollback
// succeeds; a failed rollback is reported as uow.RollbackError.
func (r *rotation) abort(ctx context.Context, cause error) error {
	if r.isClosed {
		return cause
	}
	r.isClosed = true
	if err := r.tx.Rollback(ctx); err != nil {
		r.log.Error(
			ctx,
			"Could not roll back unit of work.",
			logging.Entry("tokenID", r.input.TokenID),
			logging.Entry("state", r.state),
			logging.Entry("cause", cause),
			logging.Entry("err", err),
		)
		return &uow.RollbackError{Cause: cause, Err: err}
	}
	return cause
}

// release rolls back a transaction left open, e.g. by a panic.
func (r *rotation) release(ctx context.Context) {
	if r.isClosed {
		return
	}
	r.isClosed = true
	if err := r.tx.Rollback(ctx); err != nil {
		r.log.Error(
			ctx,
			"Could not release unit of work.",
			logging.Entry("tokenID", r.input.TokenID),
			logging.Entry("state", r.state),
			logging.Entry("err", err),
		)
	}
}
