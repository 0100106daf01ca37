package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	pebblestore "github.com/meilisearch/MeiliES/internal/storage/pebble"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.BindAddr == "" {
		t.Fatalf("expected a default bind addr")
	}
	if cfg.Fsync != "interval" {
		t.Fatalf("expected default fsync mode interval, got %q", cfg.Fsync)
	}
	if cfg.SubscriptionBufferSize <= 0 {
		t.Fatalf("expected a positive default subscription buffer size")
	}
}

func TestFsyncMode(t *testing.T) {
	cases := []struct {
		in      string
		want    pebblestore.FsyncMode
		wantErr bool
	}{
		{"", pebblestore.FsyncModeInterval, false},
		{"interval", pebblestore.FsyncModeInterval, false},
		{"always", pebblestore.FsyncModeAlways, false},
		{"never", pebblestore.FsyncModeNever, false},
		{"bogus", pebblestore.FsyncModeUnspecified, true},
	}
	for _, c := range cases {
		cfg := Config{Fsync: c.in}
		got, err := cfg.FsyncMode()
		if c.wantErr {
			if err == nil {
				t.Fatalf("fsync %q: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("fsync %q: unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("fsync %q: want %v, got %v", c.in, c.want, got)
		}
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "meilies.json")
	data := []byte(`{"bindAddr":"0.0.0.0:7000","fsync":"always","subscriptionBufferSize":256}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BindAddr != "0.0.0.0:7000" {
		t.Fatalf("expected overridden bind addr, got %q", cfg.BindAddr)
	}
	if cfg.Fsync != "always" {
		t.Fatalf("expected overridden fsync, got %q", cfg.Fsync)
	}
	if cfg.SubscriptionBufferSize != 256 {
		t.Fatalf("expected overridden buffer size, got %d", cfg.SubscriptionBufferSize)
	}
	if cfg.MaxStreamNameLength != Default().MaxStreamNameLength {
		t.Fatalf("expected unset fields to keep their defaults")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "meilies.yaml")
	data := []byte("bindAddr: 0.0.0.0:7000\nfsync: never\nsubscriptionFlushInterval: 25ms\n")
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BindAddr != "0.0.0.0:7000" {
		t.Fatalf("expected overridden bind addr, got %q", cfg.BindAddr)
	}
	if cfg.Fsync != "never" {
		t.Fatalf("expected overridden fsync, got %q", cfg.Fsync)
	}
	if cfg.SubscriptionFlushInterval != 25*time.Millisecond {
		t.Fatalf("expected overridden flush interval, got %v", cfg.SubscriptionFlushInterval)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults for empty path")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	os.Setenv("MEILIES_BIND_ADDR", "10.0.0.1:9999")
	os.Setenv("MEILIES_FSYNC", "always")
	os.Setenv("MEILIES_SUBSCRIPTION_BUFFER_SIZE", "64")
	t.Cleanup(func() {
		os.Unsetenv("MEILIES_BIND_ADDR")
		os.Unsetenv("MEILIES_FSYNC")
		os.Unsetenv("MEILIES_SUBSCRIPTION_BUFFER_SIZE")
	})
	FromEnv(&cfg)
	if cfg.BindAddr != "10.0.0.1:9999" {
		t.Fatalf("env override bind addr")
	}
	if cfg.Fsync != "always" {
		t.Fatalf("env override fsync")
	}
	if cfg.SubscriptionBufferSize != 64 {
		t.Fatalf("env override buffer size")
	}
}
