package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pii-labeler/internal/app"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/internal/utils"
	"github.com/MKhiriev/go-pii-labeler/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, r, "*Handler.register", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	h.issueToken(w, r, registeredUser, app.MsgUserRegistered)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, r, "*Handler.login", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, service.ErrWrongPassword) {
			err = fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		writeError(w, r, "*Handler.login", err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	h.issueToken(w, r, foundUser, app.MsgLoggedIn)
}

// issueToken signs a token for user and returns it in the Authorization
// header.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User, message string) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, "*Handler.issueToken", err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.Response{Success: true, Message: message}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		writeError(w, r, "*Handler.logout", ErrNotAuthenticated)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), token); err != nil {
		writeError(w, r, "*Handler.logout", err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: app.MsgLoggedOut}, http.StatusOK)
}
