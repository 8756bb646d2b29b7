package usageloader

import (
	"io"
	stdlog "log"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// NewLogger builds the logfmt logger used by the function and routes the
// standard library logger through it. Every line carries ts and caller.
func NewLogger(w io.Writer, debug bool) log.Logger {
	allow := level.AllowInfo()
	if debug {
		allow = level.AllowAll()
	}
	// The level filter sits under the context so DefaultCaller resolves to the
	// call site, also through loggers derived with log.With or level.Info.
	logger := level.NewFilter(log.NewLogfmtLogger(log.NewSyncWriter(w)), allow)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	stdlog.SetFlags(0)
	stdlog.SetOutput(log.NewStdlibAdapter(logger))
	return logger
}
