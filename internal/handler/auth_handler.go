package handler

import (
	"net/http"

	"stream-api/internal/middleware"
	"stream-api/internal/model"
	"stream-api/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login completes a handshake the BasicAuth middleware already performed: it
// issues the bearer token and returns it with the user's identity fields.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrMissingBasicAuth)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrMissingBasicAuth)
		return
	}

	loginInfo, err := h.service.CreateLoginInfo(user, *principal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, "User Info and JSON Web Token", loginInfo)
}
