package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server side
	Port      string
	DBPath    string
	JWTSecret []byte
	TokenTTL  time.Duration

	// Seed admin account, created on first run if missing
	AdminName     string
	AdminEmail    string
	AdminPassword string

	// Client side
	APIBaseURL string
	StatePath  string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real env vars still apply.
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "3000"),
		DBPath:        getEnv("DB_PATH", "./restorapp.db"),
		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@restorapp.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		APIBaseURL:    getEnv("API_URL", "http://localhost:3000"),
		StatePath:     getEnv("STATE_PATH", defaultStatePath()),
	}

	// JWT secret (critical for security)
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		slog.Warn("JWT_SECRET environment variable not set. Generating a random key for development. Issued tokens will be invalid on restart. PLEASE SET JWT_SECRET IN PRODUCTION!")
		cfg.JWTSecret = generateRandomBytes(32)
	} else {
		decoded, err := base64.StdEncoding.DecodeString(secretStr)
		if err == nil && len(decoded) >= 32 {
			cfg.JWTSecret = decoded
		} else if len(secretStr) >= 32 {
			// Accept a plain-text secret as long as it is long enough.
			cfg.JWTSecret = []byte(secretStr)
		} else {
			slog.Warn("JWT_SECRET is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE JWT_SECRET IN PRODUCTION!")
			cfg.JWTSecret = generateRandomBytes(32)
		}
	}

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		slog.Error("Invalid TOKEN_TTL_HOURS environment variable. Falling back to default.", "TOKEN_TTL_HOURS", os.Getenv("TOKEN_TTL_HOURS"))
		ttlHours = 24
	}
	cfg.TokenTTL = time.Duration(ttlHours) * time.Hour

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "3000"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// defaultStatePath puts the client state database under the user's config
// directory, falling back to the working directory.
func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "./restorapp-state.db"
	}
	return filepath.Join(dir, "restorapp", "state.db")
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil { // Use crypto/rand
		slog.Error("Failed to read random bytes", "error", err)
		// Fallback to a less secure random string if crypto/rand fails
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
