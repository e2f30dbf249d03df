package domain

import "errors"

// Sign-up and login.
var (
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrWeakPassword       = errors.New("weak_password")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user_exists")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrSignUpDisabled     = errors.New("sign_up_disabled")
)

// Browser sessions.
var (
	ErrInvalidSession  = errors.New("invalid_session")
	ErrSessionNotFound = errors.New("session_not_found")
	ErrSessionExpired  = errors.New("session_expired")
	ErrSessionRevoked  = errors.New("session_revoked")
)
