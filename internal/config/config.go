package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Mongo     MongoConfig     `yaml:"mongo"`
	AWS       AWSConfig       `yaml:"aws"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// AWSConfig holds S3 image-host configuration
type AWSConfig struct {
	Region        string `yaml:"region"`
	S3Bucket      string `yaml:"s3_bucket"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	Endpoint      string `yaml:"endpoint"`        // custom endpoint for S3-compatible hosts
	PublicBaseURL string `yaml:"public_base_url"` // overrides the default https://{bucket}.s3... prefix
	KeyPrefix     string `yaml:"key_prefix"`
}

// AuthConfig holds admin-session and guest-password configuration
type AuthConfig struct {
	JWTSecret         string `yaml:"jwt_secret"`
	AdminUsername     string `yaml:"admin_username"`
	AdminPasswordHash string `yaml:"admin_password_hash"` // bcrypt
	GuestPasswordHash string `yaml:"guest_password_hash"` // bcrypt, shared memory-card password
	TokenLifetimeDays int    `yaml:"token_lifetime_days"`
	SecureCookies     bool   `yaml:"secure_cookies"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RateLimitConfig bounds guest submissions per client IP
type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

// Load reads configuration from a YAML file and applies environment overrides
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv lets secrets come from the environment instead of the config file
func (c *Config) applyEnv() {
	overrideString(&c.Mongo.URI, "MONGODB_URI")
	overrideString(&c.Auth.JWTSecret, "JWT_SECRET")
	overrideString(&c.Auth.AdminUsername, "ADMIN_USERNAME")
	overrideString(&c.Auth.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	overrideString(&c.Auth.GuestPasswordHash, "GUEST_PASSWORD_HASH")
	overrideString(&c.AWS.AccessKey, "AWS_ACCESS_KEY_ID")
	overrideString(&c.AWS.SecretKey, "AWS_SECRET_ACCESS_KEY")
	overrideString(&c.AWS.S3Bucket, "AWS_S3_BUCKET")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "wedding"
	}
	if c.Auth.TokenLifetimeDays == 0 {
		c.Auth.TokenLifetimeDays = 100
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 10
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.AWS.KeyPrefix == "" {
		c.AWS.KeyPrefix = "memory-cards"
	}
}

func (c *Config) validate() error {
	var missing []string
	if c.Mongo.URI == "" {
		missing = append(missing, "mongo.uri")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "auth.jwt_secret")
	}
	if c.Auth.AdminUsername == "" {
		missing = append(missing, "auth.admin_username")
	}
	if c.Auth.AdminPasswordHash == "" {
		missing = append(missing, "auth.admin_password_hash")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
