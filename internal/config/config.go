package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	pebblestore "github.com/meilisearch/MeiliES/internal/storage/pebble"
)

// Config is the top-level configuration for a meilies-server process.
type Config struct {
	// BindAddr is the "host:port" the RESP server listens on.
	BindAddr string `json:"bindAddr" yaml:"bindAddr"`
	// DataDir is the path to the Pebble database directory.
	DataDir string `json:"dataDir" yaml:"dataDir"`
	// Fsync controls WAL durability. One of "always", "interval", "never".
	Fsync string `json:"fsync" yaml:"fsync"`
	// FsyncInterval is the group-commit window when Fsync is "interval".
	FsyncInterval time.Duration `json:"fsyncInterval" yaml:"fsyncInterval"`

	// SubscriptionBufferSize bounds how many unconsumed events a live
	// subscription may buffer before it is considered a slow consumer.
	SubscriptionBufferSize int `json:"subscriptionBufferSize" yaml:"subscriptionBufferSize"`
	// SubscriptionFlushInterval bounds how long a subscription writer may
	// coalesce buffered events before flushing them to the connection.
	SubscriptionFlushInterval time.Duration `json:"subscriptionFlushInterval" yaml:"subscriptionFlushInterval"`

	// MaxStreamNameLength bounds the size of a stream name accepted from
	// the wire.
	MaxStreamNameLength int `json:"maxStreamNameLength" yaml:"maxStreamNameLength"`
	// MaxEventPayloadBytes bounds the size of a single event's data.
	MaxEventPayloadBytes int `json:"maxEventPayloadBytes" yaml:"maxEventPayloadBytes"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		BindAddr:                  "127.0.0.1:6480",
		DataDir:                   DefaultDataDir(),
		Fsync:                     "interval",
		FsyncInterval:             5 * time.Millisecond,
		SubscriptionBufferSize:    1024,
		SubscriptionFlushInterval: 10 * time.Millisecond,
		MaxStreamNameLength:       512,
		MaxEventPayloadBytes:      8 << 20,
	}
}

// FsyncMode resolves the configured Fsync string to a pebblestore.FsyncMode.
func (c Config) FsyncMode() (pebblestore.FsyncMode, error) {
	switch c.Fsync {
	case "", "interval":
		return pebblestore.FsyncModeInterval, nil
	case "always":
		return pebblestore.FsyncModeAlways, nil
	case "never":
		return pebblestore.FsyncModeNever, nil
	default:
		return pebblestore.FsyncModeUnspecified, fmt.Errorf("config: unknown fsync mode %q", c.Fsync)
	}
}

// Load reads configuration from a JSON or YAML file (selected by
// extension), overlaying it onto Default(). If path is empty, returns
// defaults unmodified.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parsing yaml %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parsing json %s: %w", path, err)
		}
	}
	return cfg, nil
}
