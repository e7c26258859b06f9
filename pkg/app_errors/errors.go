package app_errors

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrSubscriptionNotFound = errors.New("push subscription not found")
	// ErrNameLocked 名字已被鎖定：token 不符或未提供
	ErrNameLocked          = errors.New("name locked")
	ErrInvalidInput        = errors.New("invalid input")
	ErrMailerNotConfigured = errors.New("mailer not configured")
	ErrInternalServerError = errors.New("internal server error")
)
