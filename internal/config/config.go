// Package config reads server settings from the environment, loading a .env
// file first when one is present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"CivilBot/internal/assistant"
	"CivilBot/internal/calc/beam"
	"CivilBot/internal/history"
	"CivilBot/internal/upload"
)

var ErrNoTokenKey = errors.New("TOKEN_KEY environment variable is not set")

type Config struct {
	Addr     string
	TLSCert  string
	TLSKey   string
	Database string
	TokenKey []byte

	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	RateLimitRPS   float64
	RateLimitBurst int

	Beam           beam.Policy
	UploadMaxBytes int64
	HistoryLimit   int
}

func Default() Config {
	return Config{
		Addr:           ":8080",
		LLMBaseURL:     assistant.DefaultBaseURL,
		LLMModel:       assistant.DefaultConfig().Model,
		RateLimitRPS:   1,
		RateLimitBurst: 3,
		Beam:           beam.DefaultPolicy(),
		UploadMaxBytes: upload.DefaultMaxBytes,
		HistoryLimit:   history.DefaultLimit,
	}
}

// TLS reports whether both certificate and key are configured.
func (c Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

// Load reads .env (when present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, keeping defaults for unset variables.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("ADDR", &c.Addr)
	str("TLS_CERT", &c.TLSCert)
	str("TLS_KEY", &c.TLSKey)
	str("DATABASE_URL", &c.Database)
	str("GROQ_API_KEY", &c.LLMAPIKey)
	str("LLM_BASE_URL", &c.LLMBaseURL)
	str("LLM_MODEL", &c.LLMModel)

	key := getenv("TOKEN_KEY")
	if key == "" {
		return Config{}, ErrNoTokenKey
	}
	c.TokenKey = []byte(key)

	var policy beam.Policy
	floats := []struct {
		key string
		dst *float64
	}{
		{"RATE_LIMIT_RPS", &c.RateLimitRPS},
		{"BEAM_LOAD_FACTOR", &policy.LoadFactor},
		{"BEAM_MAX_STEEL_RATIO", &policy.MaxSteelRatio},
		{"BEAM_BAR_DIAMETER_MM", &policy.BarDiameterMM},
	}
	for _, f := range floats {
		v := getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive number, got %q", f.key, v)
		}
		*f.dst = n
	}
	c.Beam.Merge(&policy)

	var maxBytes int
	ints := []struct {
		key string
		dst *int
	}{
		{"RATE_LIMIT_BURST", &c.RateLimitBurst},
		{"UPLOAD_MAX_BYTES", &maxBytes},
		{"HISTORY_LIMIT", &c.HistoryLimit},
	}
	for _, i := range ints {
		v := getenv(i.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive integer, got %q", i.key, v)
		}
		*i.dst = n
	}
	if maxBytes > 0 {
		c.UploadMaxBytes = int64(maxBytes)
	}
	return c, nil
}
