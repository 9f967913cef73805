package identity

import (
	"credstore/internal/core/domain/credential"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateResetTokenID() credential.ResetTokenID {
	return credential.ResetTokenID(uuid.New().String())
}
