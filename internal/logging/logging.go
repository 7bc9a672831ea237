// Package logging configures the process-wide diagnostic logger.
//
// Diagnostics (configuration warnings, dropped tasks, per-task failure
// detail) go to stderr through logrus so they never interleave with the
// progress viewport on stdout.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing human-readable lines to stderr. Verbose mode
// enables debug-level output.
func New(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
