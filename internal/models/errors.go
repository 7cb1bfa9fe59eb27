package models

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrInvalidTaskData    = errors.New("invalid task data")
	ErrInvalidLabelData   = errors.New("invalid label data")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrNotFound           = errors.New("not found")

	// ErrStorage wraps any persistence failure. The wrapped driver error is
	// for logs only.
	ErrStorage = errors.New("storage error")
)
