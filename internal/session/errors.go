package session

import "errors"

var (
	ErrInvalidRedisURL  = errors.New("invalid redis url")
	ErrRedisUnavailable = errors.New("redis is unavailable")
	ErrEmptyTokenID     = errors.New("token id is empty")
)
