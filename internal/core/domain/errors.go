package domain

import "errors"

// Common domain errors
var (
	ErrNotFound              = errors.New("resource not found")
	ErrValidation            = errors.New("invalid input")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrDuplicateEmail        = errors.New("a user with that email already exists")
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
	ErrAccountPending        = errors.New("account is pending approval")
	ErrAccountInactive       = errors.New("account has been deactivated")
)

// Ownership errors
var (
	ErrNotHostelAdmin = errors.New("user is not a hostel admin")
	ErrHostelOwned    = errors.New("hostel already has an owner")
	ErrHostelNotOwned = errors.New("hostel has no owner")
)
