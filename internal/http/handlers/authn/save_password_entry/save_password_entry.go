package savepasswordentry

import (
	"credstore/internal/core/domain/credential"
	e "credstore/internal/core/domain/errors"
	"credstore/internal/core/domain/record"
	"credstore/internal/core/services"
	savepasswordentry "credstore/internal/core/services/save_password_entry"
	"credstore/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[savepasswordentry.Input, savepasswordentry.Result]
}

func New(
	service services.Service[savepasswordentry.Input, savepasswordentry.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Length(0, 256)),
		validation.Field(&i.UserID, validation.Required, validation.Length(1, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		savepasswordentry.Input{
			Entry: credential.ResetToken{
				ID:     credential.ResetTokenID(input.ID),
				UserID: credential.UserID(input.UserID),
			},
		},
	)
	if errors.Is(err, record.ErrDuplicateID) {
		response.RenderError(rw, "password entry already exists", http.StatusConflict)
		return
	}
	if errors.Is(err, credential.ErrInvalidInput) {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, response.FromPasswordEntry(result.Entry), http.StatusCreated)
}
