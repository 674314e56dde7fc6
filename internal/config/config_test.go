package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port == "" {
		t.Error("port default missing")
	}
	if cfg.Database.Path == "" {
		t.Error("database path default missing")
	}
	if cfg.Database.MigrationsPath == "" {
		t.Error("migrations path default missing")
	}
	if cfg.JWT.Issuer == "" {
		t.Error("JWT issuer default missing")
	}
	if cfg.JWT.ExpiryHours <= 0 {
		t.Errorf("JWT expiry hours = %d, want positive", cfg.JWT.ExpiryHours)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CONFIG_TEST_KEY", "set")
	if got := GetEnv("CONFIG_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("GetEnv = %q, want set", got)
	}
	os.Unsetenv("CONFIG_TEST_KEY")
	if got := GetEnv("CONFIG_TEST_KEY", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("CONFIG_TEST_INT", "42")
	if got := GetEnvAsInt("CONFIG_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvAsInt = %d, want 42", got)
	}
	t.Setenv("CONFIG_TEST_INT", "not-a-number")
	if got := GetEnvAsInt("CONFIG_TEST_INT", 7); got != 7 {
		t.Errorf("GetEnvAsInt = %d, want the fallback", got)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("CONFIG_TEST_BOOL", "true")
	if !GetEnvAsBool("CONFIG_TEST_BOOL", false) {
		t.Error("GetEnvAsBool = false, want true")
	}
	t.Setenv("CONFIG_TEST_BOOL", "maybe")
	if GetEnvAsBool("CONFIG_TEST_BOOL", false) {
		t.Error("GetEnvAsBool = true, want the fallback")
	}
}
