package config

import "time"

const (
	defaultTokenIssuer    = "pii-labeler"
	defaultTokenDuration  = 24 * time.Hour
	defaultVersion        = "dev"
	defaultHTTPAddress    = "localhost:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultMaxUpload      = 32 << 20
	defaultSQLiteDSN      = "pii-labeler.db"
	defaultKeyPrefix      = "revoked:"
	defaultBucket         = "pii-uploads"
	defaultAdminLogin     = "admin"
	defaultAdminPassword  = "admin123"
	defaultServerURL      = "http://localhost:8080"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   defaultTokenIssuer,
			TokenDuration: defaultTokenDuration,
			Version:       defaultVersion,
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverSQLite,
				DSN:    defaultSQLiteDSN,
			},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
			MaxUploadBytes: defaultMaxUpload,
		},
		Session: Session{KeyPrefix: defaultKeyPrefix},
		Archive: Archive{Bucket: defaultBucket},
		Import:  Import{DataIDScope: DataIDScopeOwner},
		Admin: Admin{
			Login:    defaultAdminLogin,
			Password: defaultAdminPassword,
		},
		Client: Client{ServerURL: defaultServerURL},
	}
}
