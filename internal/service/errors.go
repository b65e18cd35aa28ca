package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken          = errors.New("a user with this email already exists")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRefreshTokenInvalid = errors.New("refresh token invalid or revoked")
	ErrUserNotFound        = errors.New("user not found")

	ErrTemplateNotFound    = errors.New("template not found")
	ErrTemplateUnavailable = errors.New("template does not exist or is inactive")
	ErrInvalidCategory     = errors.New("invalid template category")

	ErrInvitationNotFound = errors.New("invitation not found")
	ErrGuestbookNotFound  = errors.New("guestbook entry not found")
	ErrPaymentNotFound    = errors.New("payment not found")

	// ErrFeatureDisabled is wrapped by the per-feature errors below.
	ErrFeatureDisabled   = errors.New("feature disabled")
	ErrRSVPDisabled      = fmt.Errorf("%w: RSVP is not enabled for this invitation", ErrFeatureDisabled)
	ErrGuestbookDisabled = fmt.Errorf("%w: guestbook is not enabled for this invitation", ErrFeatureDisabled)

	ErrInvalidAttendance        = errors.New("invalid attendance status")
	ErrInvalidPlan              = errors.New("plan type is not purchasable")
	ErrInvalidPaymentTransition = errors.New("invalid payment status transition")
)
