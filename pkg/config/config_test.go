package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "review.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceName != "tradereview" {
		t.Errorf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.HTTP.Port != 8000 {
		t.Errorf("expected default HTTP port 8000, got %d", cfg.HTTP.Port)
	}
	if cfg.GRPC.Port != 50051 {
		t.Errorf("expected default gRPC port 50051, got %d", cfg.GRPC.Port)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("expected default metrics path, got %q", cfg.Metrics.Path)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
service_name = "review-test"
environment = "prod"

[http]
host = "127.0.0.1"
port = 9100

[grpc]
enabled = false

[logger]
level = "debug"
format = "text"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceName != "review-test" {
		t.Errorf("expected review-test, got %q", cfg.ServiceName)
	}
	if cfg.HTTP.Addr() != "127.0.0.1:9100" {
		t.Errorf("unexpected HTTP addr %q", cfg.HTTP.Addr())
	}
	if cfg.GRPC.Enabled {
		t.Error("expected gRPC to be disabled")
	}
	if cfg.Logger.Level != "debug" || cfg.Logger.Format != "text" {
		t.Errorf("unexpected logger config %+v", cfg.Logger)
	}
	// 未配置的键保持默认值
	if cfg.HTTP.ShutdownTimeout != 10 {
		t.Errorf("expected default shutdown timeout, got %d", cfg.HTTP.ShutdownTimeout)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_HTTP_PORT", "9200")
	t.Setenv("APP_LOGGER_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9200 {
		t.Errorf("expected env override 9200, got %d", cfg.HTTP.Port)
	}
	if cfg.Logger.Level != "warn" {
		t.Errorf("expected env override warn, got %q", cfg.Logger.Level)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, "service_name = \n[http")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			ServiceName: "tradereview",
			HTTP:        HTTPConfig{Host: "0.0.0.0", Port: 8000},
			GRPC:        GRPCConfig{Enabled: true, Host: "0.0.0.0", Port: 50051},
			Tracing:     TracingConfig{SamplingRate: 1},
			Metrics:     MetricsConfig{Enabled: true, Path: "/metrics"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing service name", func(c *Config) { c.ServiceName = "" }, true},
		{"bad http port", func(c *Config) { c.HTTP.Port = 70000 }, true},
		{"bad grpc port", func(c *Config) { c.GRPC.Port = 0 }, true},
		{"grpc disabled ignores port", func(c *Config) { c.GRPC.Enabled = false; c.GRPC.Port = 0 }, false},
		{"shared listener", func(c *Config) { c.GRPC.Port = 8000 }, true},
		{"sampling out of range", func(c *Config) { c.Tracing.SamplingRate = 1.5 }, true},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	c := base()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Environment != "dev" {
		t.Errorf("expected environment to default to dev, got %q", c.Environment)
	}
}
