package config

import "time"

// Store kinds.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreS3       = "s3"
	StoreRedis    = "redis"
)

// S3Config locates the bucket used by the s3 durable store.
type S3Config struct {
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	Bucket    string `json:"bucket"`
	Prefix    string `json:"prefix"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - Store / DSN: durable backend for the account directory.
//   - SessionStore / SessionDSN: ephemeral backend for the session record.
//     The memory store ends with the process, like a browser tab.
//   - RedisAddr / RedisPassword / RedisDB: used when SessionStore is redis.
//   - SessionSecret: HMAC secret for session tokens. Empty means a random
//     secret per process, which only suits the memory session store.
//   - SessionTTL: session token lifetime, 0 for no expiry.
//   - CatalogPath: optional JSON menu replacing the built-in one.
//   - RedirectDelay / ConfirmDelay: UI pacing pauses in the REPL.
type Config struct {
	Store         string
	DSN           string
	SessionStore  string
	SessionDSN    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionSecret string
	SessionTTL    time.Duration
	S3            S3Config
	CatalogPath   string
	RedirectDelay time.Duration
	ConfirmDelay  time.Duration
	LogFormat     string
	LogLevel      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Store = StoreSQLite
	c.DSN = "deliciousbites.db"
	c.SessionStore = StoreMemory
	c.SessionDSN = ""
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.SessionSecret = ""
	c.SessionTTL = 12 * time.Hour
	c.S3 = S3Config{Region: "us-east-1", Bucket: "deliciousbites", Prefix: "records/"}
	c.CatalogPath = ""
	c.RedirectDelay = 1500 * time.Millisecond
	c.ConfirmDelay = 1 * time.Second
	c.LogFormat = "text"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
