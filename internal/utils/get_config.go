package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`
	AppEnv  string `yaml:"APP_ENV"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	// JWT and cookie session keys
	JWTSecret     string `yaml:"JWT_SECRET"`
	SessionSecret string `yaml:"SESSION_SECRET"`

	// Logging
	LogLevel string `yaml:"LOG_LEVEL"`

	// HTTP
	RateLimitMax int    `yaml:"RATE_LIMIT_MAX"`
	CORSOrigins  string `yaml:"CORS_ORIGINS"`
	SeedDefaults bool   `yaml:"SEED_DEFAULTS"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Image storage: "database" or "s3"
	StorageDriver string `yaml:"STORAGE_DRIVER"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

// LoadConfig reads config.yaml, or the file named by CONFIG_PATH. It runs
// before the logger exists, so failures are returned for the caller to log.
func LoadConfig() error {
	file, err := os.ReadFile(configPath())
	if err != nil {
		return fmt.Errorf("error reading YAML file: %w", err)
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		return fmt.Errorf("error parsing YAML file: %w", err)
	}

	// Set environment variables for keys that should be accessible via os.Getenv
	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("SESSION_SECRET", config.SessionSecret)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
	return nil
}

// RequireSecrets fails when a signing key for bearer tokens or page sessions
// is missing. An empty key would let anyone mint valid credentials.
func RequireSecrets() error {
	for _, key := range []string{"JWT_SECRET", "SESSION_SECRET"} {
		if GetConfig(key) == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	return nil
}

// SetConfig replaces the loaded configuration. Used by tests and tools that
// do not read config.yaml.
func SetConfig(c Config) {
	config = c
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yaml"
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		if config.AppPort == "" {
			return "8080"
		}
		return config.AppPort
	case "APP_ENV":
		if config.AppEnv == "" {
			return "development"
		}
		return config.AppEnv
	case "APP_URL":
		return config.AppURL
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_TIMEZONE":
		if config.DBTimeZone == "" {
			return "UTC"
		}
		return config.DBTimeZone
	case "JWT_SECRET":
		return config.JWTSecret
	case "SESSION_SECRET":
		return config.SessionSecret
	case "LOG_LEVEL":
		if config.LogLevel == "" {
			return "info"
		}
		return config.LogLevel
	case "RATE_LIMIT_MAX":
		if config.RateLimitMax <= 0 {
			return "20"
		}
		return strconv.Itoa(config.RateLimitMax)
	case "CORS_ORIGINS":
		if config.CORSOrigins == "" {
			return "*"
		}
		return config.CORSOrigins
	case "SEED_DEFAULTS":
		return getBoolString(config.SeedDefaults)
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "STORAGE_DRIVER":
		if config.StorageDriver == "" {
			return "database"
		}
		return config.StorageDriver
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
