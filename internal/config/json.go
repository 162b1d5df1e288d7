package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON keys. Durations
// accept either Go duration strings or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxUploadBytes int64    `json:"max_upload_bytes"`
	} `json:"server,omitempty"`

	Session struct {
		RedisURL  string `json:"redis_url"`
		KeyPrefix string `json:"key_prefix"`
	} `json:"session,omitempty"`

	Archive struct {
		Endpoint  string `json:"endpoint"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
		Bucket    string `json:"bucket"`
		UseSSL    bool   `json:"use_ssl"`
	} `json:"archive,omitempty"`

	Import struct {
		DataIDScope string `json:"data_id_scope"`
	} `json:"import,omitempty"`

	Admin struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	} `json:"admin,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			MaxUploadBytes: jsonCfg.Server.MaxUploadBytes,
		},
		Session: Session{
			RedisURL:  jsonCfg.Session.RedisURL,
			KeyPrefix: jsonCfg.Session.KeyPrefix,
		},
		Archive: Archive{
			Endpoint:  jsonCfg.Archive.Endpoint,
			AccessKey: jsonCfg.Archive.AccessKey,
			SecretKey: jsonCfg.Archive.SecretKey,
			Bucket:    jsonCfg.Archive.Bucket,
			UseSSL:    jsonCfg.Archive.UseSSL,
		},
		Import: Import{DataIDScope: jsonCfg.Import.DataIDScope},
		Admin: Admin{
			Login:    jsonCfg.Admin.Login,
			Password: jsonCfg.Admin.Password,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
