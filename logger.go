package meshin

import (
	"log/slog"
	"os"
	"strings"
)

var logLevel = new(slog.LevelVar)

// ConfigureLogging sets up the global default logger with a TextHandler
// and configures the log level based on the MESHIN_LOG_LEVEL environment variable.
// It defaults to Info level if not specified.
//
// This function should be called by the application at startup if it wants
// to use the default meshin logging configuration.
func ConfigureLogging() {
	logLevel.Set(ParseLogLevel(os.Getenv("MESHIN_LOG_LEVEL")))

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// SetLogLevel sets the logging level for the logger configured by ConfigureLogging.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// ParseLogLevel maps DEBUG, WARN and ERROR to their slog levels; anything else is Info.
func ParseLogLevel(lvl string) slog.Level {
	switch strings.ToUpper(lvl) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}
