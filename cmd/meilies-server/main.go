// Command meilies-server runs the MeiliES event-log server: a RESP-speaking
// TCP listener backed by an embedded Pebble store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	serverrun "github.com/meilisearch/MeiliES/internal/cmd/server"
	cfgpkg "github.com/meilisearch/MeiliES/internal/config"
	logpkg "github.com/meilisearch/MeiliES/pkg/log"
	"github.com/spf13/cobra"
)

func main() {
	level := os.Getenv("MEILIES_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "meilies-server",
		Short: "MeiliES event-log server",
		Long:  "meilies-server is a single-binary, single-node event-sourcing log reachable over a RESP-compatible TCP protocol.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("db-path")
			hostname, _ := cmd.Flags().GetString("hostname")
			port, _ := cmd.Flags().GetInt("port")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)
			if fsyncMode != "" {
				cfg.Fsync = fsyncMode
			}
			if cmd.Flags().Changed("hostname") || cmd.Flags().Changed("port") {
				cfg.BindAddr = fmt.Sprintf("%s:%d", hostname, port)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return serverrun.Run(ctx, serverrun.Options{
				DataDir:  dataDir,
				BindAddr: cfg.BindAddr,
				Config:   cfg,
				Logger:   logger,
			})
		},
	}
	rootCmd.Flags().String("db-path", "", "data directory (defaults to an OS-specific application data directory)")
	rootCmd.Flags().String("hostname", "127.0.0.1", "bind hostname")
	rootCmd.Flags().Int("port", 6480, "bind port")
	rootCmd.Flags().String("fsync", "", "fsync mode: always|interval|never (overrides config)")
	rootCmd.Flags().String("config", "", "path to a JSON or YAML config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
