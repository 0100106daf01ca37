package log

import "fmt"

// Config is a declarative description of a Logger, suitable for loading
// from internal/config.
type Config struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "json" or "text"
	Output string `json:"output" yaml:"output"` // "console", "file:<path>", or "null"
}

// ApplyConfig builds a Logger from a declarative Config.
func ApplyConfig(cfg Config) (Logger, error) {
	opts := []LoggerOption{WithLevel(parseLevel(cfg.Level))}

	switch cfg.Format {
	case "", "json":
		opts = append(opts, WithFormatter(&JSONFormatter{}))
	case "text":
		opts = append(opts, WithFormatter(&TextFormatter{}))
	default:
		return nil, fmt.Errorf("log: unknown format %q", cfg.Format)
	}

	switch {
	case cfg.Output == "" || cfg.Output == "console":
		opts = append(opts, WithOutput(NewConsoleOutput()))
	case cfg.Output == "null":
		opts = append(opts, WithOutput(NullOutput{}))
	case len(cfg.Output) > len("file:") && cfg.Output[:5] == "file:":
		out, err := NewFileOutput(cfg.Output[5:])
		if err != nil {
			return nil, fmt.Errorf("log: opening file output: %w", err)
		}
		opts = append(opts, WithOutput(out))
	default:
		return nil, fmt.Errorf("log: unknown output %q", cfg.Output)
	}

	return NewLogger(opts...), nil
}

func parseLevel(s string) Level {
	switch s {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}
