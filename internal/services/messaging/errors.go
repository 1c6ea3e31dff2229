package messaging

import "errors"

// Service errors
var (
	ErrEmptyBody   = errors.New("message body is empty")
	ErrSelfMessage = errors.New("cannot message yourself")
	ErrUserBlocked = errors.New("user is blocked")
	ErrNoAdmin     = errors.New("no admin account available")
)
