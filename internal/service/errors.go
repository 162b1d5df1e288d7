package service

import "errors"

var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrWrongPassword           = errors.New("wrong password")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenRevoked            = errors.New("token was revoked")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")

	ErrPermissionDenied = errors.New("permission denied")

	ErrDuplicateDataIDInFile = errors.New("duplicate data_id values in file")
	ErrDataIDAlreadyExists   = errors.New("data_id values already exist")
	ErrNoDocumentsFound      = errors.New("no documents found")

	ErrInvalidSeedMode       = errors.New("invalid seed mode")
	ErrUnsupportedSeedFormat = errors.New("unsupported seed file format")
	ErrInvalidSeedEntry      = errors.New("invalid seed entry")
)
