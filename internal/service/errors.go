package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("incorrect email or password")
	ErrPasswordsDoNotMatch = errors.New("passwords do not match")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrInvalidOrExpiredResetToken = errors.New("reset token is invalid or has expired")
	ErrResetMailNotSent           = errors.New("could not send password reset email")
)
