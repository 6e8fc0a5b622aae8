package service

import "errors"

var (
	// ErrInvalidCredentials covers unknown user, wrong password and disabled
	// account alike.
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrOTPRequired        = errors.New("otp_required")
	ErrInvalidOTP         = errors.New("invalid_otp")

	ErrInvalidToken   = errors.New("invalid_token")
	ErrSessionExpired = errors.New("session_expired")
	ErrUnauthorized   = errors.New("unauthorized")

	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)
