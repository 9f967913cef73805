package savepasswordentry

import (
	"context"
	"credstore/internal/core/domain/credential"
	"credstore/internal/core/domain/record"
	service "credstore/internal/core/services/save_password_entry"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Entry = input.Entry
	if result.Entry.ID == "" {
		result.Entry.ID = "G1"
	}
	return result, nil
}

func serve(s *stubService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/authn/password-entries", strings.NewReader(body))
	rw := httptest.NewRecorder()
	New(s).ServeHTTP(rw, req)
	return rw
}

func TestSavePasswordEntryHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		err            error
		expectedStatus int
		expectedBody   string
		expectedInput  *service.Input
	}{
		{
			id:             "with-id",
			body:           `{"id": "A1", "userId": "U1"}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id": "A1", "userId": "U1"}`,
			expectedInput:  &service.Input{Entry: credential.ResetToken{ID: "A1", UserID: "U1"}},
		},
		{
			id:             "generated-id",
			body:           `{"userId": "U1"}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id": "G1", "userId": "U1"}`,
			expectedInput:  &service.Input{Entry: credential.ResetToken{UserID: "U1"}},
		},
		{
			id:             "no-user",
			body:           `{"id": "A1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "malformed",
			body:           `{"id": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "duplicate",
			body:           `{"id": "A1", "userId": "U1"}`,
			err:            record.NewStorageError("auth_password_action", record.OpSave, record.ErrDuplicateID),
			expectedStatus: http.StatusConflict,
			expectedInput:  &service.Input{Entry: credential.ResetToken{ID: "A1", UserID: "U1"}},
		},
		{
			id:             "storage",
			body:           `{"id": "A1", "userId": "U1"}`,
			err:            record.NewStorageError("auth_password_action", record.OpSave, errors.New("boom")),
			expectedStatus: http.StatusInternalServerError,
			expectedInput:  &service.Input{Entry: credential.ResetToken{ID: "A1", UserID: "U1"}},
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			s := &stubService{err: testcase.err}

			rw := serve(s, testcase.body)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			assert.Equal(t, testcase.expectedInput, s.input)
			if testcase.expectedBody != "" {
				assert.JSONEq(t, testcase.expectedBody, rw.Body.String())
			}
		})
	}
}
