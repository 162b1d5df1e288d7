// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the settings shared by the server and labelerctl:
// a known database driver with a DSN and a known data_id scope.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	switch cfg.Import.DataIDScope {
	case DataIDScopeOwner, DataIDScopeGlobal:
	default:
		return fmt.Errorf("%w: unknown data_id scope %q", ErrInvalidImportConfigs, cfg.Import.DataIDScope)
	}

	return nil
}

// validateServer additionally requires what the HTTP server needs to issue
// tokens and accept uploads.
func (cfg *StructuredConfig) validateServer() error {
	if err := cfg.validate(); err != nil {
		return err
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.MaxUploadBytes <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
