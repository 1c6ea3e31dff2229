package registry

import "errors"

// Service errors
var (
	ErrInvalidAmount = errors.New("invalid payment amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidStatus = errors.New("invalid verification status")
)
