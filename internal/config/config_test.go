package config_test

import (
	"errors"
	"strings"
	"testing"

	"CivilBot/internal/config"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	c, err := config.FromEnv(env(map[string]string{"TOKEN_KEY": "secret"}))
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != ":8080" || c.HistoryLimit != 50 || c.UploadMaxBytes != 16<<20 {
		t.Errorf("defaults = %+v", c)
	}
	if c.Beam.LoadFactor != 1.5 || c.Beam.BarDiameterMM != 16 {
		t.Errorf("beam policy = %+v", c.Beam)
	}
	if c.TLS() {
		t.Error("TLS enabled without cert and key")
	}
	if string(c.TokenKey) != "secret" {
		t.Errorf("TokenKey = %q", c.TokenKey)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	c, err := config.FromEnv(env(map[string]string{
		"TOKEN_KEY":            "k",
		"ADDR":                 ":9000",
		"TLS_CERT":             "server.crt",
		"TLS_KEY":              "server.key",
		"DATABASE_URL":         "postgres://localhost/civilbot",
		"LLM_MODEL":            "llama3-70b-8192",
		"RATE_LIMIT_RPS":       "2.5",
		"RATE_LIMIT_BURST":     "10",
		"BEAM_BAR_DIAMETER_MM": "20",
		"UPLOAD_MAX_BYTES":     "1024",
		"HISTORY_LIMIT":        "20",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != ":9000" || !c.TLS() || c.Database == "" || c.LLMModel != "llama3-70b-8192" {
		t.Errorf("strings = %+v", c)
	}
	if c.RateLimitRPS != 2.5 || c.RateLimitBurst != 10 || c.UploadMaxBytes != 1024 || c.HistoryLimit != 20 {
		t.Errorf("numbers = %+v", c)
	}
	if c.Beam.BarDiameterMM != 20 || c.Beam.LoadFactor != 1.5 {
		t.Errorf("beam policy = %+v", c.Beam)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"missing token key", map[string]string{}},
		{"bad float", map[string]string{"TOKEN_KEY": "k", "BEAM_LOAD_FACTOR": "high"}},
		{"negative int", map[string]string{"TOKEN_KEY": "k", "HISTORY_LIMIT": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.FromEnv(env(tt.vars)); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := config.FromEnv(env(nil))
	if !errors.Is(err, config.ErrNoTokenKey) {
		t.Errorf("err = %v, want ErrNoTokenKey", err)
	}
	_, err = config.FromEnv(env(map[string]string{"TOKEN_KEY": "k", "RATE_LIMIT_BURST": "x"}))
	if err == nil || !strings.Contains(err.Error(), "RATE_LIMIT_BURST") {
		t.Errorf("err = %v, want mention of RATE_LIMIT_BURST", err)
	}
}
