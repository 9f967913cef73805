package savepasswordentry

import (
	"context"
	"credstore/internal/core/domain/credential"
	e "credstore/internal/core/domain/errors"
	"credstore/internal/core/domain/logging"
	"credstore/internal/core/domain/record"
	"credstore/internal/core/services"
	"errors"
	"fmt"
)

// Input is saved under Entry.ID, or under a generated id when it is empty.
type Input struct {
	Entry credential.ResetToken
}

type Result struct {
	Entry credential.ResetToken
}

type service struct {
	log      logging.Logger
	store    record.Store[credential.ResetToken]
	identity credential.IdentityGenerator
}

func New(
	log logging.Logger,
	store record.Store[credential.ResetToken],
	identity credential.IdentityGenerator,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if identity == nil {
		panic(e.NewNilArgumentError("identity"))
	}
	return &service{log: log, store: store, identity: identity}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	entry := input.Entry
	if entry.ID == "" {
		entry.ID = s.identity.GenerateResetTokenID()
	}
	if err := entry.Validate(); err != nil {
		return result, fmt.Errorf("%w: %v", credential.ErrInvalidInput, err)
	}

	_, err = s.store.Save(ctx, string(entry.ID), entry)
	if errors.Is(err, record.ErrDuplicateID) {
		s.log.Info(ctx, "Password entry already exists.", logging.Entry("entryID", entry.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not save password entry.",
			logging.Entry("entryID", entry.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password entry saved.",
		logging.Entry("entryID", entry.ID),
		logging.Entry("userID", entry.UserID),
	)
	return Result{Entry: entry}, nil
}
