package config

import (
	"os"
	"strconv"
	"time"
)

// FromEnv overlays MEILIES_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("MEILIES_BIND_ADDR"); v != "" {
		cfg.BindAddr = v
	}
	if v := os.Getenv("MEILIES_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("MEILIES_FSYNC"); v != "" {
		cfg.Fsync = v
	}
	if v := os.Getenv("MEILIES_FSYNC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FsyncInterval = d
		}
	}
	if v := os.Getenv("MEILIES_SUBSCRIPTION_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SubscriptionBufferSize = n
		}
	}
	if v := os.Getenv("MEILIES_SUBSCRIPTION_FLUSH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SubscriptionFlushInterval = d
		}
	}
	if v := os.Getenv("MEILIES_MAX_STREAM_NAME_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxStreamNameLength = n
		}
	}
	if v := os.Getenv("MEILIES_MAX_EVENT_PAYLOAD_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxEventPayloadBytes = n
		}
	}
}
