package secretderiver

import (
	"credstore/internal/core/domain/credential"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

var ErrInvalidSalt = errors.New("invalid salt encoding")

type Argon2Config struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var DefaultArgon2Config = Argon2Config{
	Memory:      64 * 1024,
	Time:        1,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// Argon2id keeps salt and hash base64 encoded.
type Argon2id struct {
	config Argon2Config
}

func NewArgon2id(config Argon2Config) (*Argon2id, error) {
	if config.Memory < 8*1024 {
		return nil, fmt.Errorf("argon2 memory must be at least 8 MiB, got %d KiB", config.Memory)
	}
	if config.Time < 1 || config.Parallelism < 1 {
		return nil, fmt.Errorf("argon2 time and parallelism must be positive")
	}
	if config.SaltLength < 16 || config.KeyLength < 16 {
		return nil, fmt.Errorf("argon2 salt and key must be at least 16 bytes")
	}
	return &Argon2id{config: config}, nil
}

func (d *Argon2id) Derive(password credential.RawPassword) (credential.Salt, credential.Hash, error) {
	raw := make([]byte, d.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", "", err
	}
	salt := credential.Salt(base64.StdEncoding.EncodeToString(raw))
	hash, err := d.Hash(password, salt)
	if err != nil {
		return "", "", err
	}
	return salt, hash, nil
}

func (d *Argon2id) Hash(password credential.RawPassword, salt credential.Salt) (credential.Hash, error) {
	raw, err := base64.StdEncoding.DecodeString(string(salt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}
	key := argon2.IDKey(
		[]byte(password),
		raw,
		d.config.Time,
		d.config.Memory,
		d.config.Parallelism,
		d.config.KeyLength,
	)
	return credential.Hash(base64.StdEncoding.EncodeToString(key)), nil
}
