package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only acceptable outside release mode.
const DefaultJWTSecret = "change-me-in-production"

type Env struct {
	AppAddr string
	GinMode string

	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	JWTSecret   string
	CORSOrigins []string

	FareMode string
	FareSeed int64

	BookingRatePerSec float64
	BookingBurst      int

	AutoMigrate   bool
	AdminUsername string
	AdminPassword string
}

// LoadEnv reads envFile (when present) and then the process environment.
// Values already set in the environment win over the file.
func LoadEnv(envFile string) Env {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			log.Printf("warning: could not read %s: %v", envFile, err)
		}
	}

	return Env{
		AppAddr: getString("APP_ADDR", ":8080"),
		GinMode: getString("GIN_MODE", ""),

		DBUser:     getString("DB_USER", "tp_user"),
		DBPassword: getString("DB_PASSWORD", ""),
		DBHost:     getString("DB_HOST", "127.0.0.1:3306"),
		DBName:     getString("DB_NAME", "transport_db"),

		JWTSecret:   getString("JWT_SECRET", DefaultJWTSecret),
		CORSOrigins: getList("CORS_ALLOWED_ORIGINS"),

		FareMode: strings.ToLower(getString("FARE_MODE", "legacy")),
		FareSeed: getInt64("FARE_SEED", 0),

		BookingRatePerSec: getFloat("BOOKING_RATE_PER_SEC", 2),
		BookingBurst:      int(getInt64("BOOKING_BURST", 5)),

		AutoMigrate:   getBool("AUTO_MIGRATE", true),
		AdminUsername: getString("ADMIN_USERNAME", ""),
		AdminPassword: getString("ADMIN_PASSWORD", ""),
	}
}

// Validate rejects settings that are unsafe to serve with. The built-in JWT
// secret is refused in release mode and logged as a warning otherwise.
func (e Env) Validate() error {
	if e.JWTSecret != DefaultJWTSecret {
		return nil
	}
	if e.GinMode == "release" {
		return errors.New("JWT_SECRET must be set when GIN_MODE=release")
	}
	log.Printf("warning: JWT_SECRET not set, using the built-in development secret")
	return nil
}

func getString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getList(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("warning: %s=%q is not a number, using default %d", key, v, def)
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("warning: %s=%q is not a number, using default %v", key, v, def)
		return def
	}
	return f
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
