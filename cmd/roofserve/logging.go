package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/roofingmaterials/roofserve/config"
)

// setupLogging installs the default slog logger: JSON lines in production,
// colored text otherwise. The standard log package is routed through it so
// net/http's own messages share the format.
func setupLogging(cfg *config.Config) error {
	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(newLogHandler(os.Stdout, cfg.Env, level)))

	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo).Writer())
	return nil
}

func newLogHandler(w io.Writer, env string, level slog.Level) slog.Handler {
	switch env {
	case "prod", "production":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	default:
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  level == slog.LevelDebug,
			TimeFormat: time.TimeOnly,
		})
	}
}

// parseLevel accepts the levels config validation allows (debug, info, warn,
// error) in any case.
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
