package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

const (
	DefaultPort           = "5000"
	DefaultDatabase       = "bistroDB"
	DefaultDBHost         = "cluster0.mongodb.net"
	DefaultTokenTTL       = time.Hour
	DefaultRequestTimeout = 10 * time.Second
)

type Config struct {
	Mongo  MongoConfig
	Auth   AuthConfig
	Server ServerConfig
}

type MongoConfig struct {
	URI      string
	User     string
	Password string
	Host     string
	Database string
}

type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	CORSOrigins    []string
	GinMode        string
}

// Load reads a .env file when one is present and builds the configuration
// from the environment. It does not validate; call Validate before use.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		grip.Info("no .env file found, relying on environment variables")
	}

	tokenTTL, err := getDuration("TOKEN_TTL", DefaultTokenTTL)
	if err != nil {
		return nil, err
	}
	timeout, err := getDuration("REQUEST_TIMEOUT", DefaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGO_URI"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			Host:     getEnv("DB_HOST", DefaultDBHost),
			Database: getEnv("MONGO_DATABASE", DefaultDatabase),
		},
		Auth: AuthConfig{
			Secret:   os.Getenv("ACCESS_TOKEN_SECRET"),
			TokenTTL: tokenTTL,
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", DefaultPort),
			RequestTimeout: timeout,
			CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
			GinMode:        getEnv("GIN_MODE", "release"),
		},
	}, nil
}

// Validate reports every missing or invalid setting at once.
func (c *Config) Validate() error {
	var problems []string
	if c.Mongo.URI == "" {
		if c.Mongo.User == "" {
			problems = append(problems, "DB_USER is not set")
		}
		if c.Mongo.Password == "" {
			problems = append(problems, "DB_PASS is not set")
		}
	}
	if c.Mongo.Database == "" {
		problems = append(problems, "MONGO_DATABASE is empty")
	}
	if c.Auth.Secret == "" {
		problems = append(problems, "ACCESS_TOKEN_SECRET is not set")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}
	if c.Server.Port == "" {
		problems = append(problems, "PORT is empty")
	}

	if len(problems) > 0 {
		return errors.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// MongoURI returns MONGO_URI verbatim when set, otherwise an Atlas SRV
// connection string built from the credentials and host.
func (c MongoConfig) MongoURI() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=Cluster0",
	}
	return u.String()
}

// Addr is the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", key)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
