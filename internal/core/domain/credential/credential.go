package credential

import (
	e "credstore/internal/core/domain/errors"
	"crypto/subtle"
	"fmt"
)

type ID string

type UserID string

type Hash string

func (h Hash) String() string {
	return "***"
}

type Salt string

func (s Salt) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// Credential is the salted hash of a user's current password.
type Credential struct {
	ID     ID     `json:"id"`
	UserID UserID `json:"userId"`
	Hash   Hash   `json:"hash"`
	Salt   Salt   `json:"salt"`
}

func (c *Credential) Validate() error {
	if c.ID == "" {
		return e.NewInvalidStateError("credential id is not set")
	}
	if c.UserID == "" {
		return e.NewInvalidStateError(fmt.Sprintf("user id is not set for credential %s", c.ID))
	}
	return nil
}

// WithSecret returns a copy of the credential carrying a new hash and salt.
// ID and UserID are preserved.
func (c Credential) WithSecret(salt Salt, hash Hash) Credential {
	c.Salt = salt
	c.Hash = hash
	return c
}

type SecretDeriver interface {
	// Derive generates a fresh salt and hashes password with it.
	Derive(password RawPassword) (Salt, Hash, error)
	// Hash recomputes the hash of password for a known salt.
	Hash(password RawPassword, salt Salt) (Hash, error)
}

// Matches reports whether password hashes to the stored credential.
func Matches(deriver SecretDeriver, password RawPassword, cred Credential) bool {
	hash, err := deriver.Hash(password, cred.Salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(cred.Hash)) == 1
}
