package resetpassword

import (
	"credstore/internal/core/domain/credential"
	e "credstore/internal/core/domain/errors"
	ratelimiter "credstore/internal/core/domain/rate_limiter"
	"credstore/internal/core/services"
	resetpassword "credstore/internal/core/services/reset_password"
	"credstore/internal/http/handlers/authn"
	"credstore/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	PasswordResetActionID string `json:"passwordResetActionId"`
	NewPassword           string `json:"newPassword"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.PasswordResetActionID, validation.Required, validation.Length(1, 1024)),
		validation.Field(&i.NewPassword, validation.Required, validation.Length(1, 1024)),
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
		resetpassword.Input{
			TokenID:     credential.ResetTokenID(input.PasswordResetActionID),
			NewPassword: credential.RawPassword(input.NewPassword),
			ClientAddr:  authn.ClientAddr(r),
		},
	)
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
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

	if !result.IsNewPasswordSet() {
		response.Render(rw, response.PasswordReset{IsNewPasswordSet: false}, http.StatusOK)
		return
	}
	token := result.Token.Value
	response.Render(
		rw,
		response.PasswordReset{
			IsNewPasswordSet:      true,
			PasswordResetActionID: string(token.ID),
			UserID:                string(token.UserID),
		},
		http.StatusOK,
	)
}
