package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	DataDir    string

	RedisAddr string
	RedisDB   int
	RedisPass string

	SessionTTL time.Duration

	SubmitRPS   float64
	SubmitBurst int

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	MailFrom     string
	MailOperator string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DataDir:    getEnv("DATA_DIR", "./data"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),

		SubmitRPS:   getEnvFloat("SUBMIT_RPS", 2),
		SubmitBurst: getEnvInt("SUBMIT_BURST", 5),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "noreply@peppertreetownhomes.com"),
		MailOperator: getEnv("MAIL_OPERATOR", "rent@peppertreetownhomes.com"),
	}
}

// UsersFile is the path of the single-file user directory.
func (c *Config) UsersFile() string {
	return filepath.Join(c.DataDir, "users.json")
}

// AppointmentsDir is the one-file-per-record appointments collection.
func (c *Config) AppointmentsDir() string {
	return filepath.Join(c.DataDir, "appointments")
}

// ApplicationsDir is the one-file-per-record applications collection.
func (c *Config) ApplicationsDir() string {
	return filepath.Join(c.DataDir, "applications")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
