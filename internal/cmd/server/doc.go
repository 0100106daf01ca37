// Package serverrun exposes a shared Run entrypoint used by the CLI to
// start the meilies-server runtime and its RESP listener, handling
// lifecycle and graceful shutdown.
//
// Example:
//
//	opts := serverrun.Options{DataDir: "./data", BindAddr: ":6480", Config: config.Default()}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = serverrun.Run(ctx, opts)
package serverrun
