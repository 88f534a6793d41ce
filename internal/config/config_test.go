package config

import (
	"testing"
	"time"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg := Load()

	// Server defaults
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if cfg.CORSAllowedOrigin != "http://localhost:3000" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "http://localhost:3000")
	}

	// Session defaults
	if cfg.SessionFile != "session.json" {
		t.Errorf("SessionFile = %q, want %q", cfg.SessionFile, "session.json")
	}

	// 人工レイテンシのデフォルト
	if cfg.LoginDelay != 1*time.Second {
		t.Errorf("LoginDelay = %v, want %v", cfg.LoginDelay, 1*time.Second)
	}
	if cfg.AnalyzeDelay != 1500*time.Millisecond {
		t.Errorf("AnalyzeDelay = %v, want %v", cfg.AnalyzeDelay, 1500*time.Millisecond)
	}

	// Fetch defaults
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want %v", cfg.FetchTimeout, 10*time.Second)
	}
	if cfg.FetchMaxSize != 5242880 {
		t.Errorf("FetchMaxSize = %d, want %d", cfg.FetchMaxSize, 5242880)
	}

	// Rate limit defaults
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 120)
	}
	if cfg.RateLimitAnalyze != 10 {
		t.Errorf("RateLimitAnalyze = %d, want %d", cfg.RateLimitAnalyze, 10)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://emolens.example.com")
	t.Setenv("SESSION_FILE", "/var/lib/emolens/session.json")
	t.Setenv("LOGIN_DELAY", "0s")
	t.Setenv("ANALYZE_DELAY", "10ms")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("FETCH_MAX_SIZE", "10485760")
	t.Setenv("RATE_LIMIT_GENERAL", "60")
	t.Setenv("RATE_LIMIT_ANALYZE", "5")

	cfg := Load()

	if cfg.ServerPort != "3000" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "3000")
	}
	if cfg.CORSAllowedOrigin != "https://emolens.example.com" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "https://emolens.example.com")
	}
	if cfg.SessionFile != "/var/lib/emolens/session.json" {
		t.Errorf("SessionFile = %q, want %q", cfg.SessionFile, "/var/lib/emolens/session.json")
	}
	if cfg.LoginDelay != 0 {
		t.Errorf("LoginDelay = %v, want 0", cfg.LoginDelay)
	}
	if cfg.AnalyzeDelay != 10*time.Millisecond {
		t.Errorf("AnalyzeDelay = %v, want %v", cfg.AnalyzeDelay, 10*time.Millisecond)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want %v", cfg.FetchTimeout, 30*time.Second)
	}
	if cfg.FetchMaxSize != 10485760 {
		t.Errorf("FetchMaxSize = %d, want %d", cfg.FetchMaxSize, 10485760)
	}
	if cfg.RateLimitGeneral != 60 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 60)
	}
	if cfg.RateLimitAnalyze != 5 {
		t.Errorf("RateLimitAnalyze = %d, want %d", cfg.RateLimitAnalyze, 5)
	}
}

func TestLoad_InvalidDuration_FallsBackToDefault(t *testing.T) {
	t.Setenv("LOGIN_DELAY", "not-a-duration")

	cfg := Load()

	if cfg.LoginDelay != 1*time.Second {
		t.Errorf("LoginDelay = %v, want default %v", cfg.LoginDelay, 1*time.Second)
	}
}

func TestLoad_InvalidInt_FallsBackToDefault(t *testing.T) {
	t.Setenv("RATE_LIMIT_GENERAL", "abc")
	t.Setenv("FETCH_MAX_SIZE", "xyz")

	cfg := Load()

	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want default %d", cfg.RateLimitGeneral, 120)
	}
	if cfg.FetchMaxSize != 5242880 {
		t.Errorf("FetchMaxSize = %d, want default %d", cfg.FetchMaxSize, 5242880)
	}
}
