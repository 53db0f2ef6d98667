package models

import "errors"

// Domain error taxonomy. Services and repositories return these (possibly
// wrapped), and the HTTP layer matches them with errors.Is to pick a status
// code and a fixed, non-leaking message.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("refresh token not provided")
	ErrExpiredToken       = errors.New("token has expired")
	ErrMalformedToken     = errors.New("malformed token")
	ErrInvalidSubject     = errors.New("token subject is not a valid user id")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserCantBeCreated  = errors.New("email already registered")
	ErrForbidden          = errors.New("admins only")
	ErrNotFound           = errors.New("record not found")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrDuplicateBarcode   = errors.New("barcode already registered")
	ErrDuplicateClient    = errors.New("client email or CPF already registered")
)
