package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates an unknown driver or an empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or upload limit.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidImportConfigs indicates an unknown data_id scope.
	ErrInvalidImportConfigs = errors.New("invalid import configuration")
)
