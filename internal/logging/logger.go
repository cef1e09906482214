package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the process-wide slog logger: JSON records on stdout, INFO
// and above unless LOG_LEVEL says otherwise. The database sink is attached
// separately, once reconciliation has created the system_logs table.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
