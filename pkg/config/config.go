package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Mongo   MongoConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	CORS    CORSConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// MongoConfig describes how to reach the document store.
type MongoConfig struct {
	URI              string
	User             string
	Password         string
	Cluster          string
	Name             string
	OperationTimeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// CookieConfig controls the attributes of the credential cookie.
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c != nil && c.Env == EnvProduction
}

// ConnectionURI returns the explicit URI when set, otherwise assembles an
// SRV connection string from the credential parts.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	userInfo := url.UserPassword(m.User, m.Password).String()
	return fmt.Sprintf("mongodb+srv://%s@%s/?retryWrites=true&w=majority", userInfo, m.Cluster)
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = strings.TrimRight(v.GetString("API_PREFIX"), "/")

	cfg.Mongo = MongoConfig{
		URI:              v.GetString("MONGO_URI"),
		User:             v.GetString("DB_USER"),
		Password:         v.GetString("DB_PASS"),
		Cluster:          v.GetString("DB_CLUSTER"),
		Name:             v.GetString("DB_NAME"),
		OperationTimeout: parseDuration(v.GetString("MONGO_OPERATION_TIMEOUT"), 10*time.Second),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("ACCESS_TOKEN_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 10*time.Hour),
	}

	production := cfg.Env == EnvProduction
	sameSite := "strict"
	if production {
		sameSite = "none"
	}
	cfg.Cookie = CookieConfig{
		Name:     v.GetString("COOKIE_NAME"),
		Secure:   production,
		SameSite: sameSite,
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("ACCESS_TOKEN_SECRET must be set")
	}
	if c.IsProduction() && c.JWT.Secret == devSecret {
		return errors.New("ACCESS_TOKEN_SECRET must be overridden in production")
	}
	if c.Mongo.URI == "" && c.Mongo.Cluster == "" {
		return errors.New("either MONGO_URI or DB_CLUSTER must be set")
	}
	if c.Cookie.Name == "" {
		return errors.New("COOKIE_NAME must not be empty")
	}
	return nil
}

const devSecret = "dev_access_token_secret"

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("MONGO_URI", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_CLUSTER", "cluster0.jcpqyde.mongodb.net")
	v.SetDefault("DB_NAME", "groupStudyDB")
	v.SetDefault("MONGO_OPERATION_TIMEOUT", "10s")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ACCESS_TOKEN_SECRET", devSecret)
	v.SetDefault("JWT_EXPIRATION", "10h")
	v.SetDefault("COOKIE_NAME", "token")

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,https://study-group-83e71.web.app,https://study-group-83e71.firebaseapp.com")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
