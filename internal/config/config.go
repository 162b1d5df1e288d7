// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// pii-labeler server and the labelerctl tool. It is populated by merging
// built-in defaults, environment variables, command-line flags and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Session configures the token revocation store. An empty RedisURL
	// keeps revocations disabled.
	Session Session `envPrefix:"SESSION_"`

	// Archive configures the object storage that keeps a raw copy of
	// every uploaded JSONL file. An empty Endpoint disables archiving.
	Archive Archive `envPrefix:"ARCHIVE_"`

	// Import holds JSONL import rules.
	Import Import `envPrefix:"IMPORT_"`

	// Admin holds the credentials used by create-admin.
	Admin Admin `envPrefix:"ADMIN_"`

	// Client holds the settings labelerctl uses to reach a running server.
	Client Client `envPrefix:"LABELER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds token lifecycle and versioning settings.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and limit settings for the HTTP transport.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxUploadBytes caps the body of /api/documents/upload.
	// Env: SERVER_MAX_UPLOAD_BYTES
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the backend: "postgres" or "sqlite".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is a Postgres connection string or a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Session configures the Redis-backed token revocation list.
type Session struct {
	// Env: SESSION_REDIS_URL
	RedisURL string `env:"REDIS_URL"`
	// Env: SESSION_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`
}

// Archive configures the S3-compatible upload archive.
type Archive struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL"`
}

// Import holds JSONL import rules.
type Import struct {
	// DataIDScope is "owner" (data_id unique per uploader) or "global".
	// Env: IMPORT_DATA_ID_SCOPE
	DataIDScope string `env:"DATA_ID_SCOPE"`
}

// Admin holds the bootstrap administrator credentials.
type Admin struct {
	Login    string `env:"LOGIN"`
	Password string `env:"PASSWORD"`
}

// Client holds labelerctl's connection to the server.
type Client struct {
	// Env: LABELER_SERVER
	ServerURL string `env:"SERVER"`
	// Env: LABELER_TOKEN
	Token string `env:"TOKEN"`
}

// Data id scopes accepted by [Import.DataIDScope].
const (
	DataIDScopeOwner  = "owner"
	DataIDScopeGlobal = "global"
)

// Database drivers accepted by [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// GetStructuredConfig loads, merges, and validates the server
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build((*StructuredConfig).validateServer)
}

// GetToolConfig loads the configuration for labelerctl. Flags are owned by
// the tool's subcommands, so only defaults, env and the JSON file apply.
func GetToolConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withJSON().
		build((*StructuredConfig).validate)
}
