// Package config loads meilies-server configuration from defaults, an
// optional JSON or YAML file, and MEILIES_* environment overrides, in
// that overlay order.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/meilies.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
