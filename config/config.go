package config

import (
	"errors"
	"io/fs"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Host          string        `envconfig:"HOST"            default:":8000"`
	Secret        string        `envconfig:"SECRET"`
	SqliteDb      string        `envconfig:"SQLITE_DB"       default:"estate.db"`
	CertPath      string        `envconfig:"CERT_PATH"`
	KeyPath       string        `envconfig:"KEY_PATH"`
	SessionName   string        `envconfig:"SESSION_NAME"    default:"estate_session"`
	CookieDomain  string        `envconfig:"COOKIE_DOMAIN"`
	CookieSecure  *bool         `envconfig:"COOKIE_SECURE"`
	SessionMaxAge int           `envconfig:"SESSION_MAX_AGE" default:"1209600"`
	BcryptCost    int           `envconfig:"BCRYPT_COST"     default:"10"`
	StaticDir     string        `envconfig:"STATIC_DIR"      default:"static"`
	LogLevel      string        `envconfig:"LOG_LEVEL"       default:"info"`
	DBTimeout     time.Duration `envconfig:"DB_TIMEOUT"      default:"5s"`
}

// TLSEnabled reports whether both a certificate and a key were configured.
func (c *Config) TLSEnabled() bool {
	return c.CertPath != "" && c.KeyPath != ""
}

// SecureCookies reports whether session cookies carry the Secure flag.
// An unset COOKIE_SECURE follows TLSEnabled.
func (c *Config) SecureCookies() bool {
	if c.CookieSecure != nil {
		return *c.CookieSecure
	}
	return c.TLSEnabled()
}

var (
	instance *Config
	once     sync.Once
)

// NewConfig loads the process configuration once and returns the cached copy afterwards.
func NewConfig() (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = Load(".env")
	})
	return instance, err
}

// Load reads the optional dotenv files into the environment and then processes it.
// Variables already present in the environment win over dotenv values.
func Load(dotenv ...string) (*Config, error) {
	for _, file := range dotenv {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	return &config, nil
}
