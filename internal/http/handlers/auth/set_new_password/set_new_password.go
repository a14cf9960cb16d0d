package setnewpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "regain/internal/core/domain/errors"
	"regain/internal/core/domain/recovery"
	"regain/internal/core/domain/user"
	"regain/internal/core/services"
	service "regain/internal/core/services/set_new_password"
	"regain/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 256)),
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

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			Token:       recovery.Token(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		switch {
		// An account deleted while its token is outstanding is
		// indistinguishable from a bad token on purpose.
		case errors.Is(err, recovery.ErrInvalidOrExpiredToken), errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderError(rw, "invalid or expired recovery token", http.StatusNotFound)
		case errors.Is(err, user.ErrPasswordTooWeak):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.RenderNoContent(rw)
}
