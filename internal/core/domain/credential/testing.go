package credential

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sync"
)

// FakeSecretDeriver hands out sequential salts and hashes with sha256.
type FakeSecretDeriver struct {
	ReturnError   bool
	PanicOnDerive bool
	count         int
	lock          sync.Mutex
}

func NewFakeSecretDeriver() *FakeSecretDeriver {
	return &FakeSecretDeriver{}
}

func (d *FakeSecretDeriver) Derive(password RawPassword) (Salt, Hash, error) {
	if d.PanicOnDerive {
		panic("secret deriver failure")
	}
	if d.ReturnError {
		return "", "", fmt.Errorf("could not derive secret")
	}
	d.lock.Lock()
	d.count++
	salt := Salt(fmt.Sprintf("salt-%d", d.count))
	d.lock.Unlock()
	hash, err := d.Hash(password, salt)
	return salt, hash, err
}

func (d *FakeSecretDeriver) Hash(password RawPassword, salt Salt) (Hash, error) {
	hash := sha256.New()
	io.WriteString(hash, string(salt))
	io.WriteString(hash, string(password))
	return Hash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

type FakeIdentityGenerator struct {
	ID ResetTokenID
}

func NewFakeIdentityGenerator(id ResetTokenID) *FakeIdentityGenerator {
	return &FakeIdentityGenerator{ID: id}
}

func (g *FakeIdentityGenerator) GenerateResetTokenID() ResetTokenID {
	return g.ID
}
