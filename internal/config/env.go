package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvNow      = "INVVAL_NOW"
	EnvFormat   = "INVVAL_FORMAT"
	EnvLogLevel = "INVVAL_LOG_LEVEL"
	EnvCurrency = "INVVAL_CURRENCY"
)

// Env holds settings taken from the environment. Command-line flags override
// every field.
type Env struct {
	Now      time.Time // frozen clock; zero means use the wall clock
	Format   string
	LogLevel string
	Currency string
}

// LoadEnv loads the given .env files (or ./.env when none are named) into
// the process environment and reads the INVVAL_* settings. Only the default
// ./.env may be missing; a named file that cannot be read is an error, as is
// a malformed INVVAL_NOW.
func LoadEnv(files ...string) (Env, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, os.ErrNotExist) {
			return Env{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	env := Env{
		Format:   getEnvString(EnvFormat, "console"),
		LogLevel: getEnvString(EnvLogLevel, "info"),
		Currency: strings.ToUpper(getEnvString(EnvCurrency, "")),
	}
	if raw := getEnvString(EnvNow, ""); raw != "" {
		now, err := ParseDate(raw)
		if err != nil {
			return env, fmt.Errorf("%s: %w", EnvNow, err)
		}
		env.Now = now
	}
	return env, nil
}

// Clock returns the frozen time if one was configured, else time.Now.
func (e Env) Clock() time.Time {
	if !e.Now.IsZero() {
		return e.Now
	}
	return time.Now()
}

func getEnvString(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
