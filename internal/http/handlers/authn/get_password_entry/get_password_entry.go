package getpasswordentry

import (
	"credstore/internal/core/domain/credential"
	e "credstore/internal/core/domain/errors"
	"credstore/internal/core/services"
	getpasswordentry "credstore/internal/core/services/get_password_entry"
	"credstore/internal/http/handlers/response"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[getpasswordentry.Input, getpasswordentry.Result]
}

func New(
	service services.Service[getpasswordentry.Input, getpasswordentry.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entryID")

	result, err := h.service.Run(r.Context(), getpasswordentry.Input{ID: credential.ResetTokenID(id)})
	if errors.Is(err, credential.ErrInvalidInput) {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	if !result.Entry.IsPresent {
		response.RenderNotFound(rw)
		return
	}

	response.Render(rw, response.FromPasswordEntry(result.Entry.Value), http.StatusOK)
}
