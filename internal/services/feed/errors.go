package feed

import "errors"

// Service errors
var (
	ErrEmptyContent      = errors.New("post content is empty")
	ErrInvalidVisibility = errors.New("invalid post visibility")
	ErrNotAllowed        = errors.New("not allowed")
)
