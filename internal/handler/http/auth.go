package http

import (
	"encoding/json"
	"net/http"

	"github.com/tmaksat/newsauth/internal/app"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/utils"
	"github.com/tmaksat/newsauth/models"
)

func (h *Handler) requestRegistrationOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		writeKind(w, r, KindValidation, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.RegistrationService.RequestOTP(ctx, req.Email, req.FullName, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgVerificationCodeSent}, http.StatusAccepted)
}

func (h *Handler) verifyRegistrationOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		writeKind(w, r, KindValidation, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, pair, err := h.services.RegistrationService.VerifyOTP(ctx, req.Email, req.OTP)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("userID", user.UserID).Msg("registration verified")
	utils.WriteJSON(w, models.AuthResponse{
		User:         &user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, http.StatusCreated)
}

func (h *Handler) resendRegistrationOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		writeKind(w, r, KindValidation, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.RegistrationService.ResendOTP(ctx, req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgVerificationCodeSent}, http.StatusAccepted)
}
