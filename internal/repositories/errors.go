package repositories

import "errors"

// Repository errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCallSessionNotFound = errors.New("call session not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrEmailTaken          = errors.New("email already taken")
	ErrPhoneTaken          = errors.New("phone number already taken")
	ErrDatabaseOperation   = errors.New("database operation failed")
)
