package me

import (
	"errors"
	"net/http"
	e "regain/internal/core/domain/errors"
	"regain/internal/core/domain/user"
	"regain/internal/core/services"
	service "regain/internal/core/services/get_user_by_session_token"
	"regain/internal/http/handlers/auth"
	"regain/internal/http/handlers/response"
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.GetTokenFromContext(r.Context())
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Token: token})
	if err != nil {
		if errors.Is(err, user.ErrSessionDoesNotExist) {
			response.RenderUnauthorized(rw)
		} else {
			response.RenderInternalError(rw)
		}
		return
	}

	currentUser := response.User{}
	currentUser.FromDomainUser(result.User)
	response.Render(rw, currentUser, http.StatusOK)
}
