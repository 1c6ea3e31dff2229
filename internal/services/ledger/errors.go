package ledger

import "errors"

// Service errors
var (
	ErrInsufficientPoints = errors.New("insufficient points balance")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrUnknownEarnEvent   = errors.New("unknown earning event")
)
