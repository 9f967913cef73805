package secretderiver

import (
	"credstore/internal/core/domain/credential"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultPBKDF2Iterations = 1000
	DefaultPBKDF2KeyLength  = 20
	DefaultPBKDF2SaltLength = 20
)

// PBKDF2 derives HMAC-SHA1 keys. Salt and hash are stored as upper-case hex and
// the salt participates in hashing in its encoded form.
type PBKDF2 struct {
	iterations int
	keyLength  int
	saltLength int
}

func NewPBKDF2(iterations int, keyLength int, saltLength int) *PBKDF2 {
	if iterations <= 0 || keyLength <= 0 || saltLength <= 0 {
		panic("pbkdf2 parameters must be positive")
	}
	return &PBKDF2{iterations: iterations, keyLength: keyLength, saltLength: saltLength}
}

func NewDefaultPBKDF2() *PBKDF2 {
	return NewPBKDF2(DefaultPBKDF2Iterations, DefaultPBKDF2KeyLength, DefaultPBKDF2SaltLength)
}

func (d *PBKDF2) Derive(password credential.RawPassword) (credential.Salt, credential.Hash, error) {
	raw := make([]byte, d.saltLength)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", "", err
	}
	salt := credential.Salt(strings.ToUpper(hex.EncodeToString(raw)))
	hash, err := d.Hash(password, salt)
	if err != nil {
		return "", "", err
	}
	return salt, hash, nil
}

func (d *PBKDF2) Hash(password credential.RawPassword, salt credential.Salt) (credential.Hash, error) {
	key := pbkdf2.Key([]byte(password), []byte(salt), d.iterations, d.keyLength, sha1.New)
	return credential.Hash(strings.ToUpper(hex.EncodeToString(key))), nil
}
