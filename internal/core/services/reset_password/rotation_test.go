package resetpassword

import (
	"context"
	"credstore/internal/core/domain/credential"
	"credstore/internal/core/domain/logging"
	uow "credstore/internal/core/domain/unit_of_work"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRotationStopsInState(t *testing.T) {
	cases := []struct {
		id            string
		tokens        []credential.ResetToken
		credentials   []credential.Credential
		tokenID       credential.ResetTokenID
		expectedState state
		isRotated     bool
	}{
		{
			id:            "no-token",
			tokenID:       "T1",
			expectedState: stateStart,
		},
		{
			id:            "no-credential",
			tokens:        []credential.ResetToken{{ID: "T1", UserID: "U1"}},
			tokenID:       "T1",
			expectedState: stateTokenFound,
		},
		{
			id:            "credential-of-other-user",
			tokens:        []credential.ResetToken{{ID: "T1", UserID: "U1"}},
			credentials:   []credential.Credential{{ID: "C2", UserID: "U2", Hash: "h", Salt: "s"}},
			tokenID:       "T1",
			expectedState: stateTokenFound,
		},
		{
			id:            "rotated",
			tokens:        []credential.ResetToken{{ID: "T1", UserID: "U1"}},
			credentials:   []credential.Credential{{ID: "C1", UserID: "U1", Hash: "h", Salt: "s"}},
			tokenID:       "T1",
			expectedState: stateCommitted,
			isRotated:     true,
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			fakeUow := uow.NewFakeUnitOfWork()
			for _, token := range testcase.tokens {
				fakeUow.Context.ResetTokenStore.Put(string(token.ID), token)
			}
			for _, cred := range testcase.credentials {
				fakeUow.Context.CredentialStore.Put(string(cred.ID), cred)
			}
			tx, err := fakeUow.Begin(context.Background())
			require.NoError(t, err)

			// Exercise ---
			r := newRotation(
				logging.NewFakeLogger(),
				credential.NewFakeSecretDeriver(),
				tx,
				Input{TokenID: testcase.tokenID, NewPassword: "newpass"},
			)
			token, err := r.run(context.Background())

			// Verify ---
			require.NoError(t, err)
			require.Equal(t, testcase.expectedState, r.state)
			require.Equal(t, testcase.isRotated, token.IsPresent)
			require.True(t, r.isClosed)
			require.True(t, fakeUow.Context.IsClosed())
		})
	}
}

func TestStateNames(t *testing.T) {
	require.Equal(t, "start", stateStart.String())
	require.Equal(t, "credential replaced", stateCredentialReplaced.String())
	require.Equal(t, "committed", stateCommitted.String())
	require.Equal(t, "state(42)", state(42).String())
}

func TestStepFromCommittedPanics(t *testing.T) {
	fakeUow := uow.NewFakeUnitOfWork()
	tx, err := fakeUow.Begin(context.Background())
	require.NoError(t, err)

	r := newRotation(logging.NewFakeLogger(), credential.NewFakeSecretDeriver(), tx, Input{})
	r.state = stateCommitted
	require.Panics(t, func() { _, _ = r.step(context.Background()) })
}
