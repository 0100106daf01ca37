// Package runtime wires storage, configuration, and the stream registry
// into a single-node meilies-server instance. It exposes Open/Close and
// health checks, and is the thing every transport-facing package (the
// RESP connection server, the CLI) holds a reference to.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
package runtime
