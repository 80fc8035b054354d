package httpapi

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, handlers that log fall
// back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// defaultLogVerbosity is the per-request logging default, read once at
// startup. Unset or unparseable PREVIEWD_LOG_LEVEL disables request logging.
var defaultLogVerbosity = func() zerolog.Level {
	lvl, err := zerolog.ParseLevel(os.Getenv("PREVIEWD_LOG_LEVEL"))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.Disabled
	}
	return lvl
}()

// requestLogVerbosity resolves how chatty a single request wants its handler
// to be. The log query parameter wins over the X-Log-Level header, which
// wins over the process default.
func requestLogVerbosity(r *http.Request) zerolog.Level {
	for _, v := range []string{r.URL.Query().Get("log"), r.Header.Get("X-Log-Level")} {
		if v == "" {
			continue
		}
		if lvl, err := zerolog.ParseLevel(v); err == nil && lvl != zerolog.NoLevel {
			return lvl
		}
	}
	return defaultLogVerbosity
}

// wantsLog reports whether the request's verbosity includes events at lvl.
// Lower zerolog levels are more verbose.
func wantsLog(r *http.Request, lvl zerolog.Level) bool {
	return requestLogVerbosity(r) <= lvl
}
