package config

import (
	"encoding/json"
	"os"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It is seeded
// from the current Config so keys absent from the file keep their value.
type JsonConfig struct {
	Store         string   `json:"store"`
	DSN           string   `json:"dsn"`
	SessionStore  string   `json:"session_store"`
	SessionDSN    string   `json:"session_dsn"`
	RedisAddr     string   `json:"redis_addr"`
	RedisPassword string   `json:"redis_password"`
	RedisDB       int      `json:"redis_db"`
	SessionSecret string   `json:"session_secret"`
	SessionTTL    Duration `json:"session_ttl"`
	S3            S3Config `json:"s3"`
	CatalogPath   string   `json:"catalog"`
	RedirectDelay Duration `json:"redirect_delay"`
	ConfirmDelay  Duration `json:"confirm_delay"`
	LogFormat     string   `json:"log_format"`
	LogLevel      string   `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// It panics on read or decode errors, like parseFlags.
func parseJson(cfg *Config) {
	path := jsonConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig{
		Store:         cfg.Store,
		DSN:           cfg.DSN,
		SessionStore:  cfg.SessionStore,
		SessionDSN:    cfg.SessionDSN,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    Duration{cfg.SessionTTL},
		S3:            cfg.S3,
		CatalogPath:   cfg.CatalogPath,
		RedirectDelay: Duration{cfg.RedirectDelay},
		ConfirmDelay:  Duration{cfg.ConfirmDelay},
		LogFormat:     cfg.LogFormat,
		LogLevel:      cfg.LogLevel,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.Store = jc.Store
	cfg.DSN = jc.DSN
	cfg.SessionStore = jc.SessionStore
	cfg.SessionDSN = jc.SessionDSN
	cfg.RedisAddr = jc.RedisAddr
	cfg.RedisPassword = jc.RedisPassword
	cfg.RedisDB = jc.RedisDB
	cfg.SessionSecret = jc.SessionSecret
	cfg.SessionTTL = jc.SessionTTL.Duration
	cfg.S3 = jc.S3
	cfg.CatalogPath = jc.CatalogPath
	cfg.RedirectDelay = jc.RedirectDelay.Duration
	cfg.ConfirmDelay = jc.ConfirmDelay.Duration
	cfg.LogFormat = jc.LogFormat
	cfg.LogLevel = jc.LogLevel
}
