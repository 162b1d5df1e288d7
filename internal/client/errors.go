package client

import "errors"

var (
	ErrNoCommand       = errors.New("no command given")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingFlag     = errors.New("missing required flag")
	ErrInvalidIDs      = errors.New("invalid document ids")
	ErrConflictingMode = errors.New("-update and -clear are mutually exclusive")
)
