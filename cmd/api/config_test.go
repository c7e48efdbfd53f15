package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadConfigJson(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"http_port": 6060,
		"db_conn_string": "host=localhost dbname=invites",
		"redis_addr": "localhost:6379",
		"carrier_url": "http://localhost:8080/send",
		"carrier_max_retry": 3,
		"daily_send_limit": 64
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := ReadConfigJson(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HttpPort != 6060 || cfg.DailySendLimit != 64 || cfg.CarrierMaxRetry != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestReadConfigJson_DefaultDailyLimit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"http_port": 6060}`), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := ReadConfigJson(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DailySendLimit != 128 {
		t.Fatalf("expected default daily limit 128, got %d", cfg.DailySendLimit)
	}
}

func TestReadConfigJson_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := ReadConfigJson(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
