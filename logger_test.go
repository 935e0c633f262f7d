package meshin

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"Error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConfigureLoggingHonorsEnv(t *testing.T) {
	t.Setenv("MESHIN_LOG_LEVEL", "DEBUG")
	ConfigureLogging()
	if logLevel.Level() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", logLevel.Level())
	}
	SetLogLevel(slog.LevelInfo)
	if logLevel.Level() != slog.LevelInfo {
		t.Errorf("expected info level after SetLogLevel")
	}
}
