// Package logging configures the logrus logger used across the client.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options selects level, format (text or json) and output (stdout, stderr
// or a file path).
type Options struct {
	Level  string
	Format string
	Output string
	// Verbose forces the debug level.
	Verbose bool
}

// Init configures logger from opts. Invalid values fall back to sensible
// defaults with a warning instead of failing. The returned closer releases
// the log file when one was opened.
func Init(logger *logrus.Logger, opts Options) io.Closer {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'warn' instead. Error: %v", opts.Level, err)
		level = logrus.WarnLevel
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	var output io.Writer
	var closer io.Closer = nopCloser{}
	switch strings.ToLower(opts.Output) {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		file, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logger.Warnf("Failed to open log file '%s', using 'stderr' instead. Error: %v", opts.Output, err)
			output = os.Stderr
		} else {
			output = file
			closer = file
		}
	}
	logger.SetOutput(output)

	logger.Debug("Logger initialized")
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
