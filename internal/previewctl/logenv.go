package previewctl

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// clog carries previewctl's own diagnostics. Command results print to
// stdout; the logger stays on stderr so scripted callers can pipe output.
var clog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger().Level(zerolog.InfoLevel)

func init() {
	SetLogLevel(envStr("PREVIEWCTL_LOG_LEVEL", "info"))
}

// SetLogLevel adjusts diagnostic verbosity. Unknown names fall back to info.
func SetLogLevel(level string) {
	s := strings.ToLower(level)
	switch s {
	case "warning":
		s = "warn"
	case "err":
		s = "error"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	clog = clog.Level(lvl)
}

func debug(format string, a ...any) { clog.Debug().Msgf(format, a...) }
func info(format string, a ...any)  { clog.Info().Msgf(format, a...) }
func warn(format string, a ...any)  { clog.Warn().Msgf(format, a...) }

// Env helpers
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return strings.EqualFold(v, "yes")
}
func envDur(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
