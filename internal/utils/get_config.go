package utils

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const DefaultConfigPath = "config.yaml"

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Rate limiter storage, in-memory when empty
	RedisAddr string `yaml:"REDIS_ADDR"`

	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`
	Port      string `yaml:"PORT"`
}

var defaults = map[string]string{
	"DB_PORT":    "5432",
	"DB_SSLMODE": "disable",
	"JWT_ISSUER": "CULINASHARE",
	"SMTP_PORT":  "587",
	"LOG_LEVEL":  "info",
	"LOG_FORMAT": "json",
	"PORT":       "8080",
}

var (
	config Config
	mu     sync.RWMutex
)

func (c *Config) keys() map[string]*string {
	return map[string]*string{
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"DB_SSLMODE":         &c.DBSSLMode,
		"JWT_SECRET":         &c.JWTSecret,
		"JWT_ISSUER":         &c.JWTIssuer,
		"APP_URL":            &c.AppURL,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
		"REDIS_ADDR":         &c.RedisAddr,
		"LOG_LEVEL":          &c.LogLevel,
		"LOG_FORMAT":         &c.LogFormat,
		"PORT":               &c.Port,
	}
}

// LoadConfig reads config.yaml and the optional .env file from the working
// directory.
func LoadConfig() error {
	return LoadConfigFrom(DefaultConfigPath, ".env")
}

// LoadConfigFrom reads the YAML file at path, then lets environment
// variables override it. Either file may be missing. Values in envFile are
// exported without replacing variables that are already set.
func LoadConfigFrom(path, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for key, field := range cfg.keys() {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*field = value
		}
		if *field == "" {
			*field = defaults[key]
		}
	}

	mu.Lock()
	config = cfg
	mu.Unlock()
	return nil
}

// GetConfig returns the loaded value for key, or "" for unknown keys.
func GetConfig(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	if field, ok := config.keys()[key]; ok {
		return *field
	}
	return ""
}

func GetAppConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return config
}
