package serverrun

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cfgpkg "github.com/meilisearch/MeiliES/internal/config"
	"github.com/meilisearch/MeiliES/internal/runtime"
	"github.com/meilisearch/MeiliES/internal/server"
	logpkg "github.com/meilisearch/MeiliES/pkg/log"
)

// Options configures a server run.
type Options struct {
	DataDir  string
	BindAddr string
	Config   cfgpkg.Config
	Logger   logpkg.Logger
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Run opens the runtime, starts the RESP listener, and blocks until ctx
// is canceled (including on SIGINT/SIGTERM), then shuts down gracefully.
func Run(ctx context.Context, opts Options) error {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Config.BindAddr == "" {
		opts.Config = cfgpkg.Default()
	}
	if opts.DataDir == "" {
		opts.DataDir = opts.Config.DataDir
	}
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	mode, err := opts.Config.FsyncMode()
	if err != nil {
		return err
	}

	rt, err := runtime.Open(runtime.Options{DataDir: opts.DataDir, Fsync: mode, Config: opts.Config})
	if err != nil {
		return err
	}
	defer rt.Close()

	logger := opts.Logger
	if logger == nil {
		lvl, _ := logpkg.ParseLevel(getenvDefault("MEILIES_LOG_LEVEL", "info"))
		logger = logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(&logpkg.TextFormatter{}), logpkg.WithOutput(logpkg.NewConsoleOutput()))
	}
	logpkg.RedirectStdLog(logger)

	bindAddr := opts.BindAddr
	if bindAddr == "" {
		bindAddr = opts.Config.BindAddr
	}
	logger.Info("starting meilies-server",
		logpkg.Str("bind_addr", bindAddr),
		logpkg.Str("data_dir", opts.DataDir),
		logpkg.Str("fsync", opts.Config.Fsync),
	)

	srv := server.New(rt.Registry(), logger.With(logpkg.Component("server")), opts.Config)
	err = srv.ListenAndServe(sctx, bindAddr)
	logger.Info("meilies-server stopped")
	return err
}
