package entitlement

import "errors"

// Service errors
var (
	ErrSessionNotFound = errors.New("call session not found")
	ErrUserBlocked     = errors.New("user is blocked")
	ErrSelfCall        = errors.New("cannot call yourself")
)
