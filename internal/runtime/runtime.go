package runtime

import (
	"context"
	"errors"

	cfgpkg "github.com/meilisearch/MeiliES/internal/config"
	"github.com/meilisearch/MeiliES/internal/eventlog"
	pebblestore "github.com/meilisearch/MeiliES/internal/storage/pebble"
)

// Options configures a Runtime.
type Options struct {
	DataDir string
	Fsync   pebblestore.FsyncMode
	Config  cfgpkg.Config
}

// Runtime wires storage, config, and the stream registry for a
// single-node instance.
type Runtime struct {
	db       *pebblestore.DB
	registry *eventlog.Registry
	config   cfgpkg.Config
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.Config.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}
	return &Runtime{db: db, registry: eventlog.NewRegistry(db), config: opts.Config}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple storage health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("runtime: db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Registry returns the shared stream registry.
func (r *Runtime) Registry() *eventlog.Registry { return r.registry }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }
