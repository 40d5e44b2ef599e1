package http

import (
	"encoding/json"
	"net/http"

	"github.com/tmaksat/newsauth/internal/app"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/utils"
	"github.com/tmaksat/newsauth/models"
)

func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		writeKind(w, r, KindValidation, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.PasswordResetService.RequestReset(ctx, req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	// Identical body for known and unknown emails.
	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgResetRequested}, http.StatusAccepted)
}

func (h *Handler) verifyPasswordResetOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		writeKind(w, r, KindValidation, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.PasswordResetService.VerifyOTP(ctx, req.Email, req.OTP); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgCodeVerified}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		writeKind(w, r, KindValidation, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.PasswordResetService.ResetPassword(ctx, req.Email, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgPasswordReset}, http.StatusOK)
}
