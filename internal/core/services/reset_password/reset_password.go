package resetpassword

import (
	"context"
	c "credstore/internal/core/domain/common"
	"credstore/internal/core/domain/credential"
	e "credstore/internal/core/domain/errors"
	"credstore/internal/core/domain/logging"
	uow "credstore/internal/core/domain/unit_of_work"
	"credstore/internal/core/services"
	"fmt"
)

type Input struct {
	TokenID     credential.ResetTokenID
	NewPassword credential.RawPassword
	ClientAddr  string
}

func (i Input) GetRateLimitKey() string {
	return "rl::reset_password::" + i.ClientAddr
}

func (i Input) Validate() error {
	if i.TokenID == "" {
		return fmt.Errorf("%w: reset token id is required", credential.ErrInvalidInput)
	}
	if i.NewPassword == "" {
		return fmt.Errorf("%w: %v", credential.ErrInvalidInput, credential.ErrEmptyPassword)
	}
	return nil
}

// Result carries the consumed reset token. It is empty when there was nothing
// to rotate: the token or the credential does not exist (anymore).
// The new plaintext password is never echoed back, neither here nor in the
// stored token.
type Result struct {
	Token c.Optional[credential.ResetToken]
}

func (r Result) IsNewPasswordSet() bool {
	return r.Token.IsPresent
}

type service struct {
	log     logging.Logger
	uow     uow.UnitOfWork
	deriver credential.SecretDeriver
}

func New(
	log logging.Logger,
	uow uow.UnitOfWork,
	deriver credential.SecretDeriver,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if uow == nil {
		panic(e.NewNilArgumentError("uow"))
	}
	if deriver == nil {
		panic(e.NewNilArgumentError("deriver"))
	}
	return &service{
		log:     log,
		uow:     uow,
		deriver: deriver,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Validate(); err != nil {
		return result, err
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not begin unit of work.",
			logging.Entry("tokenID", input.TokenID),
			logging.Entry("err", err),
		)
		return result, err
	}
	r := newRotation(s.log, s.deriver, tx, input)
	defer r.release(ctx)

	token, err := r.run(ctx)
	if err != nil {
		return result, err
	}
	if token.IsPresent {
		s.log.Info(
			ctx,
			"New password has been successfully set.",
			logging.Entry("tokenID", token.Value.ID),
			logging.Entry("userID", token.Value.UserID),
		)
	}
	return Result{Token: token}, nil
}
