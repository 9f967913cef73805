package getpasswordentry

import (
	"context"
	c "credstore/internal/core/domain/common"
	"credstore/internal/core/domain/credential"
	e "credstore/internal/core/domain/errors"
	"credstore/internal/core/domain/logging"
	"credstore/internal/core/domain/record"
	"credstore/internal/core/services"
	"fmt"
)

type Input struct {
	ID credential.ResetTokenID
}

// Result is empty when no entry has the requested id. Storage failures are
// returned as errors, not as an empty result.
type Result struct {
	Entry c.Optional[credential.ResetToken]
}

type service struct {
	log   logging.Logger
	store record.Store[credential.ResetToken]
}

func New(
	log logging.Logger,
	store record.Store[credential.ResetToken],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	return &service{log: log, store: store}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.ID == "" {
		return result, fmt.Errorf("%w: entry id is required", credential.ErrInvalidInput)
	}

	entry, err := s.store.FindOne(ctx, record.FieldID, string(input.ID))
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get password entry.",
			logging.Entry("entryID", input.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	return Result{Entry: entry}, nil
}
