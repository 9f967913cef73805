package getpasswordentry

import (
	"context"
	"credstore/internal/core/domain/credential"
	"credstore/internal/core/domain/logging"
	"credstore/internal/core/domain/record"
	uow "credstore/internal/core/domain/unit_of_work"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindEntry(t *testing.T) {
	store := uow.NewFakeResetTokenStore()
	store.Put("A1", credential.ResetToken{ID: "A1", UserID: "U1"})
	store.Put("A2", credential.ResetToken{ID: "A2", UserID: "U2"})
	service := New(logging.NewFakeLogger(), store)

	cases := []struct {
		id            string
		entryID       credential.ResetTokenID
		isPresent     bool
		expectedEntry credential.ResetToken
	}{
		{id: "1", entryID: "A1", isPresent: true, expectedEntry: credential.ResetToken{ID: "A1", UserID: "U1"}},
		{id: "2", entryID: "A2", isPresent: true, expectedEntry: credential.ResetToken{ID: "A2", UserID: "U2"}},
		{id: "3", entryID: "A3", isPresent: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			result, err := service.Run(context.Background(), Input{ID: testcase.entryID})

			require.NoError(t, err)
			require.Equal(t, testcase.isPresent, result.Entry.IsPresent)
			require.Equal(t, testcase.expectedEntry, result.Entry.Value)
		})
	}
}

func TestStorageFailureIsNotAbsence(t *testing.T) {
	store := uow.NewFakeResetTokenStore()
	store.FindOneError = errors.New("connection refused")
	service := New(logging.NewFakeLogger(), store)

	result, err := service.Run(context.Background(), Input{ID: "A1"})

	require.True(t, record.IsStorageError(err))
	require.False(t, result.Entry.IsPresent)
}

func TestEmptyID(t *testing.T) {
	service := New(logging.NewFakeLogger(), uow.NewFakeResetTokenStore())

	_, err := service.Run(context.Background(), Input{})

	require.ErrorIs(t, err, credential.ErrInvalidInput)
}
