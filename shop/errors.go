package shop

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyOwned       = errors.New("item already owned")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNotDeveloper       = errors.New("developer access only")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfLink           = errors.New("cannot add yourself as a friend")
)
