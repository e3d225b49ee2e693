package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
)

// Auth and account errors.
var (
	ErrPhoneRoleRequired = apperr.Validation("Phone number and role are required")
	ErrInvalidPhone      = apperr.Validation("Invalid phone number")
	ErrInvalidRole       = apperr.Validation("Invalid role")

	ErrInvalidOTPRequest = apperr.New(apperr.KindAuthInput, "Invalid OTP request")
	ErrCodeExpired       = apperr.New(apperr.KindAuthInput, "OTP has expired")
	ErrCodeIncorrect     = apperr.New(apperr.KindAuthInput, "Incorrect OTP")
	ErrAdminTOTP         = apperr.New(apperr.KindAuthInput, "Invalid admin verification code")

	ErrTokenMissing   = apperr.New(apperr.KindAuth, "Authorization token missing")
	ErrTokenInvalid   = apperr.New(apperr.KindAuth, "Invalid or expired token")
	ErrTokenExpired   = apperr.New(apperr.KindAuth, "Token expired")
	ErrRefreshInvalid = apperr.New(apperr.KindAuth, "Invalid refresh token")
	ErrUserNotFound   = apperr.New(apperr.KindAuth, "User not found")

	ErrAccountDeleted = apperr.Forbidden("Account has been deleted")
	ErrNotAuthorized  = apperr.Forbidden("Not authorized to perform this action")

	ErrNoSuchUser = apperr.NotFound("User not found")
)

// Listing errors.
var (
	ErrPropertyFields     = apperr.Validation("Please provide all required property details")
	ErrPropertyNotFound   = apperr.NotFound("Property not found")
	ErrAgentFields        = apperr.Validation("Agent name, dealsIn, and operatingCity are required")
	ErrAgentNotFound      = apperr.NotFound("Agent not found")
	ErrConsultantFields   = apperr.Validation("Please provide all required consultant details")
	ErrConsultantExists   = apperr.New(apperr.KindConflict, "A consultant with this name and phone number already exists")
	ErrConsultantNotFound = apperr.NotFound("Consultant not found")
	ErrInvalidID          = apperr.Validation("Invalid ID provided")
)

// Payment errors.
var (
	ErrInvalidAmount      = apperr.Validation("Amount must be greater than zero")
	ErrPaymentFields      = apperr.Validation("Missing payment details")
	ErrPaymentNotFound    = apperr.NotFound("Payment order not found")
	ErrPaymentVerifyFail  = apperr.Validation("Payment verification failed")
	ErrPaymentOrderFailed = apperr.New(apperr.KindUpstream, "Failed to create payment order")
)

// ErrSMSFailed is logged, not returned: a failed delivery leaves the code
// valid.
var ErrSMSFailed = apperr.New(apperr.KindUpstream, "Failed to send OTP")

func resendTooSoon(d time.Duration) *apperr.Error {
	return apperr.New(apperr.KindRateLimited,
		fmt.Sprintf("Please wait %d seconds before requesting another OTP", int(d.Seconds())))
}
