package secretderiver

import (
	"credstore/internal/core/domain/credential"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var upperHex = regexp.MustCompile("^[0-9A-F]+$")

func derivers(t *testing.T) map[string]credential.SecretDeriver {
	argon, err := NewArgon2id(Argon2Config{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 16})
	require.Nil(t, err)
	return map[string]credential.SecretDeriver{
		"pbkdf2":   NewDefaultPBKDF2(),
		"argon2id": argon,
	}
}

func TestDeriveUsesFreshSalt(t *testing.T) {
	for name, d := range derivers(t) {
		t.Run(name, func(t *testing.T) {
			salt1, hash1, err := d.Derive("pw1")
			require.Nil(t, err)
			salt2, hash2, err := d.Derive("pw1")
			require.Nil(t, err)

			require.NotEqual(t, salt1, salt2)
			require.NotEqual(t, hash1, hash2)
		})
	}
}

func TestHashReproducesDerivedHash(t *testing.T) {
	passwords := []credential.RawPassword{"pw1", " ", "password password", "пароль"}
	for name, d := range derivers(t) {
		for ix, password := range passwords {
			t.Run(fmt.Sprintf("%s %d", name, ix), func(t *testing.T) {
				salt, hash, err := d.Derive(password)
				require.Nil(t, err)

				rehash, err := d.Hash(password, salt)
				require.Nil(t, err)
				require.Equal(t, hash, rehash)

				cred := credential.Credential{ID: "C1", UserID: "U1"}.WithSecret(salt, hash)
				require.True(t, credential.Matches(d, password, cred))
				require.False(t, credential.Matches(d, password+"x", cred))
			})
		}
	}
}

func TestPBKDF2Format(t *testing.T) {
	salt, hash, err := NewDefaultPBKDF2().Derive("pw1")
	require.Nil(t, err)

	require.Len(t, string(salt), DefaultPBKDF2SaltLength*2)
	require.Len(t, string(hash), DefaultPBKDF2KeyLength*2)
	require.Regexp(t, upperHex, string(salt))
	require.Regexp(t, upperHex, string(hash))
}

func TestPBKDF2IsDeterministicForSalt(t *testing.T) {
	d := NewDefaultPBKDF2()
	h1, err := d.Hash("pw1", "00FF")
	require.Nil(t, err)
	h2, err := NewPBKDF2(DefaultPBKDF2Iterations, DefaultPBKDF2KeyLength, 4).Hash("pw1", "00FF")
	require.Nil(t, err)
	require.Equal(t, h1, h2)

	h3, err := NewPBKDF2(DefaultPBKDF2Iterations+1, DefaultPBKDF2KeyLength, 4).Hash("pw1", "00FF")
	require.Nil(t, err)
	require.NotEqual(t, h1, h3)
}

func TestArgon2idRejectsBrokenSalt(t *testing.T) {
	d, err := NewArgon2id(DefaultArgon2Config)
	require.Nil(t, err)

	_, err = d.Hash("pw1", "not base64!")
	require.ErrorIs(t, err, ErrInvalidSalt)
}

func TestArgon2idRejectsWeakConfig(t *testing.T) {
	cases := []Argon2Config{
		{Memory: 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 16},
		{Memory: 8 * 1024, Time: 0, Parallelism: 1, SaltLength: 16, KeyLength: 16},
		{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16},
	}
	for ix, c := range cases {
		t.Run(fmt.Sprint(ix), func(t *testing.T) {
			_, err := NewArgon2id(c)
			require.NotNil(t, err)
		})
	}
}
