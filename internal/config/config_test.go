package config_test

import (
	"testing"

	"github.com/shellac-studio/shellac/internal/config"
)

func TestServerConfigFinalize(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg config.ServerConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		if cfg.Addr() != "0.0.0.0:8080" {
			t.Errorf("addr = %q, want 0.0.0.0:8080", cfg.Addr())
		}
		if cfg.ReadTimeoutDuration() == 0 {
			t.Error("read timeout not defaulted")
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv(config.EnvServerHost, "127.0.0.1")
		t.Setenv(config.EnvServerPort, "9090")

		var cfg config.ServerConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Addr() != "127.0.0.1:9090" {
			t.Errorf("addr = %q, want 127.0.0.1:9090", cfg.Addr())
		}
	})

	t.Run("rejects invalid port", func(t *testing.T) {
		cfg := config.ServerConfig{Port: 99999}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected error for invalid port")
		}
	})

	t.Run("rejects invalid timeout", func(t *testing.T) {
		cfg := config.ServerConfig{ReadTimeout: "soon"}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected error for invalid read_timeout")
		}
	})
}

func TestClassifierConfigFinalize(t *testing.T) {
	t.Run("primary credential", func(t *testing.T) {
		t.Setenv(config.EnvClassifierAPIKey, "primary-key")
		t.Setenv(config.EnvGeminiAPIKey, "fallback-key")

		var cfg config.ClassifierConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.APIKey != "primary-key" {
			t.Errorf("api key = %q, want primary-key", cfg.APIKey)
		}
		if cfg.Model != "gemini-2.5-flash" {
			t.Errorf("model = %q, want default", cfg.Model)
		}
	})

	t.Run("falls back to gemini credential", func(t *testing.T) {
		t.Setenv(config.EnvClassifierAPIKey, "")
		t.Setenv(config.EnvGeminiAPIKey, "fallback-key")

		var cfg config.ClassifierConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.APIKey != "fallback-key" {
			t.Errorf("api key = %q, want fallback-key", cfg.APIKey)
		}
	})

	t.Run("missing credential fails", func(t *testing.T) {
		t.Setenv(config.EnvClassifierAPIKey, "")
		t.Setenv(config.EnvGeminiAPIKey, "")

		var cfg config.ClassifierConfig
		if err := cfg.Finalize(); err == nil {
			t.Error("expected error with no api key set")
		}
	})

	t.Run("model and timeout overrides", func(t *testing.T) {
		t.Setenv(config.EnvClassifierAPIKey, "key")
		t.Setenv(config.EnvClassifierModel, "gemini-2.5-pro")
		t.Setenv(config.EnvClassifierTimeout, "90s")

		var cfg config.ClassifierConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Model != "gemini-2.5-pro" {
			t.Errorf("model = %q", cfg.Model)
		}
		if cfg.TimeoutDuration().Seconds() != 90 {
			t.Errorf("timeout = %v, want 90s", cfg.TimeoutDuration())
		}
	})
}

func TestAPIConfigFinalize(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg config.APIConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		if cfg.BasePath != "/api" {
			t.Errorf("base path = %q, want /api", cfg.BasePath)
		}
		if cfg.MaxUploadSizeBytes() != 50*1024*1024 {
			t.Errorf("max upload = %d, want 50MB", cfg.MaxUploadSizeBytes())
		}
		if cfg.Pagination.DefaultPageSize == 0 {
			t.Error("pagination not finalized")
		}
	})

	t.Run("parses configured upload size", func(t *testing.T) {
		cfg := config.APIConfig{MaxUploadSize: "10MB"}
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.MaxUploadSizeBytes() != 10*1024*1024 {
			t.Errorf("max upload = %d, want 10MB", cfg.MaxUploadSizeBytes())
		}
	})
}

func TestConfigMerge(t *testing.T) {
	base := &config.Config{
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
		Server:          config.ServerConfig{Port: 8080},
	}

	base.Merge(&config.Config{
		Version: "0.2.0",
		Server:  config.ServerConfig{Port: 9090},
	})

	if base.Version != "0.2.0" {
		t.Errorf("version = %q, want 0.2.0", base.Version)
	}
	if base.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", base.Server.Port)
	}
	if base.ShutdownTimeout != "30s" {
		t.Errorf("shutdown timeout = %q, want unchanged 30s", base.ShutdownTimeout)
	}
}
