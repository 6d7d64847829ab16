// If you are AI: This file builds the leveled go-kit logger used by the server and CLI.

package logging

import (
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"scriptvar/internal/config"
)

// New creates a logger writing to w with the configured format and level.
// Every line carries a UTC timestamp and the caller.
func New(w io.Writer, cfg config.LogConfig) (log.Logger, error) {
	var logger log.Logger
	switch cfg.Format {
	case "json":
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	case "logfmt", "":
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	filter, err := levelFilter(cfg.Level)
	if err != nil {
		return nil, err
	}

	logger = level.NewFilter(logger, filter)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, nil
}

// levelFilter maps a level name to a go-kit filter option.
func levelFilter(name string) (level.Option, error) {
	switch name {
	case "debug":
		return level.AllowDebug(), nil
	case "info", "":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", name)
	}
}
