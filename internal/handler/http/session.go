package http

import (
	"encoding/json"
	"net/http"

	"github.com/tmaksat/newsauth/internal/app"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/utils"
	"github.com/tmaksat/newsauth/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		writeKind(w, r, KindValidation, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, pair, err := h.services.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		User:         &user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		writeKind(w, r, KindValidation, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	pair, err := h.services.SessionService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		writeKind(w, r, KindUnauthenticated, app.MsgAuthenticationRequired, http.StatusUnauthorized)
		return
	}

	// The body is optional: logout without one ends every session.
	var req models.LogoutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Err(err).Msg(app.MsgInvalidJSON)
			writeKind(w, r, KindValidation, app.MsgInvalidJSON, http.StatusBadRequest)
			return
		}
	}

	if err := h.services.SessionService.Logout(ctx, user.UserID, req.RefreshToken); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgLoggedOut}, http.StatusOK)
}

func (h *Handler) logoutAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		writeKind(w, r, KindUnauthenticated, app.MsgAuthenticationRequired, http.StatusUnauthorized)
		return
	}

	if _, err := h.services.SessionService.LogoutAll(ctx, user.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgAllSessionsTerminated}, http.StatusOK)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		writeKind(w, r, KindUnauthenticated, app.MsgAuthenticationRequired, http.StatusUnauthorized)
		return
	}

	// Re-read so the response reflects the record, not the token.
	fresh, err := h.services.SessionService.CurrentUser(ctx, user.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, fresh, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetCurrentUserFromContext(ctx)
	if !ok {
		writeKind(w, r, KindUnauthenticated, app.MsgAuthenticationRequired, http.StatusUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		writeKind(w, r, KindValidation, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.SessionService.ChangePassword(ctx, user.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgPasswordChanged}, http.StatusOK)
}
