package credential

import (
	e "credstore/internal/core/domain/errors"
)

type ResetTokenID string

// ResetToken is a one-time password action authorizing a single credential
// rotation for UserID. The new password is never part of the stored record.
type ResetToken struct {
	ID     ResetTokenID `json:"id"`
	UserID UserID       `json:"userId"`
}

func (t *ResetToken) Validate() error {
	if t.ID == "" {
		return e.NewInvalidStateError("reset token id is not set")
	}
	if t.UserID == "" {
		return e.NewInvalidStateError("user id is not set for reset token " + string(t.ID))
	}
	return nil
}

type IdentityGenerator interface {
	GenerateResetTokenID() ResetTokenID
}
