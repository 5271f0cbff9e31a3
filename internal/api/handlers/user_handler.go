package handlers

import (
	"net/http"

	"github.com/isdelr/storefront-seed/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for seeded users.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// GetAll lists every user. Passwords are never serialized.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve users")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
