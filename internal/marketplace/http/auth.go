package http

import (
	"net/http"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/service"
	"github.com/aussiebroadwan/estate/pkg/estatesdk"
	"github.com/aussiebroadwan/estate/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

// HandleSendOTP godoc
//
//	@Summary		Send a login code
//	@Description	Issues a 4-digit code for the phone and sends it by SMS. A role is required unless the phone is the admin phone.
//	@Description	A failed SMS still answers 200 with delivered=false; the code stays valid.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		estatesdk.SendOTPRequest	true	"Phone and role"
//	@Success		200		{object}	estatesdk.SendOTPResponse
//	@Failure		400		{object}	estatesdk.MessageResponse	"Bad phone or missing role"
//	@Failure		429		{object}	estatesdk.MessageResponse	"Code requested too recently"
//	@Router			/api/auth/send-otp [post].
func (h *AuthHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req estatesdk.SendOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.AuthService.RequestCode(r.Context(), req.Phone, req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, codeResponse(res, "OTP sent successfully"))
}

// HandleResendOTP godoc
//
//	@Summary		Resend a login code
//	@Description	Replaces the current code for the phone. Subject to the same 30 second spacing as send-otp.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		estatesdk.SendOTPRequest	true	"Phone"
//	@Success		200		{object}	estatesdk.SendOTPResponse
//	@Failure		400		{object}	estatesdk.MessageResponse
//	@Failure		429		{object}	estatesdk.MessageResponse
//	@Router			/api/auth/resend-otp [post].
func (h *AuthHandler) HandleResendOTP(w http.ResponseWriter, r *http.Request) {
	var req estatesdk.SendOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.AuthService.ResendCode(r.Context(), req.Phone)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, codeResponse(res, "OTP resent successfully"))
}

func codeResponse(res service.CodeResult, msg string) estatesdk.SendOTPResponse {
	out := estatesdk.SendOTPResponse{
		Success:   true,
		Message:   msg,
		Delivered: res.Delivered,
		ExpiresAt: res.ExpiresAt,
		DebugOTP:  res.DebugCode,
	}
	if !res.Delivered {
		out.Warning = service.ErrSMSFailed.Message
	}
	return out
}

// HandleVerifyOTP godoc
//
//	@Summary		Verify a login code
//	@Description	Checks the code, creates the account on first login and appends the role. The admin also receives every user.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		estatesdk.VerifyOTPRequest	true	"Phone, code and role"
//	@Success		200		{object}	estatesdk.VerifyOTPResponse
//	@Failure		400		{object}	estatesdk.MessageResponse	"Missing, expired or incorrect code"
//	@Failure		403		{object}	estatesdk.MessageResponse	"Account deleted"
//	@Router			/api/auth/verify-otp [post].
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req estatesdk.VerifyOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.AuthService.Verify(r.Context(), req.Phone, req.OTP, req.Role, req.TOTP)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := estatesdk.VerifyOTPResponse{
		Success:      true,
		Message:      "Login successful",
		User:         userInfo(res.User),
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		IsAdmin:      res.IsAdmin,
		IsNewUser:    res.IsNewUser,
	}
	if res.IsAdmin {
		out.Message = "Admin login successful"
		out.AllUsers = userInfos(res.AllUsers)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRefresh godoc
//
//	@Summary		Rotate tokens
//	@Description	Exchanges the latest refresh token for a new access and refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		estatesdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	estatesdk.TokenResponse
//	@Failure		401		{object}	estatesdk.MessageResponse
//	@Router			/api/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req estatesdk.RefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, estatesdk.TokenResponse{
		Success:      true,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleLogout godoc
//
//	@Summary	Log out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	estatesdk.MessageResponse
//	@Failure	401	{object}	estatesdk.MessageResponse
//	@Security	BearerAuth
//	@Router		/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	actor := service.ActorFromContext(r.Context())
	if err := h.AuthService.Logout(r.Context(), actor.ID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

// HandleProfile godoc
//
//	@Summary		Current user
//	@Description	Returns the caller's record. The admin receives every user instead.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	estatesdk.ProfileResponse
//	@Failure		401	{object}	estatesdk.MessageResponse
//	@Failure		404	{object}	estatesdk.MessageResponse
//	@Security		BearerAuth
//	@Router			/api/auth/profile [get].
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	u, all, err := h.UserService.Profile(r.Context(), service.ActorFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := estatesdk.ProfileResponse{Success: true}
	if u != nil {
		info := userInfo(*u)
		out.User = &info
	} else {
		out.Users = userInfos(all)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDeleteAccount godoc
//
//	@Summary		Delete an account
//	@Description	Soft-deletes the account. Allowed for the account itself and the admin.
//	@Tags			Auth
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	estatesdk.MessageResponse
//	@Failure		401	{object}	estatesdk.MessageResponse
//	@Failure		403	{object}	estatesdk.MessageResponse
//	@Failure		404	{object}	estatesdk.MessageResponse
//	@Security		BearerAuth
//	@Router			/api/auth/delete/{id} [delete].
func (h *AuthHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	err := h.UserService.DeleteAccount(r.Context(), service.ActorFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Account deleted successfully")
}

func userInfo(u domain.User) estatesdk.User {
	return estatesdk.User{
		ID:            u.ID,
		Phone:         u.Phone,
		Roles:         u.RoleStrings(),
		IsVerified:    u.IsVerified,
		IsDeleted:     u.IsDeleted,
		LastOTPSentAt: u.LastOTPSentAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func userInfos(us []domain.User) []estatesdk.User {
	out := make([]estatesdk.User, len(us))
	for i, u := range us {
		out[i] = userInfo(u)
	}
	return out
}
