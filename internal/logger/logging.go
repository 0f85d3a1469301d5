// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// NewStderr creates a charm log writing to stderr, for modes where stdout
// carries protocol data (the IPC server) and must stay clean.
func NewStderr(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// SetDebug flips the global level between debug and warn, matching the -d
// flag of the binaries.
func SetDebug(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		// Info stays visible: the upgrade and merge reports are the
		// operator's only view of what a confirmation will do.
		log.SetLevel(log.InfoLevel)
	}
}
