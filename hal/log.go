package hal

import "github.com/sirupsen/logrus"

// logger backs the package's lifecycle diagnostics. It is never
// consulted on the dispatch hot path; only Init, Register, Select, and
// Shutdown log.
var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the package's diagnostic logger. Passing nil
// restores the standard logrus logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		logger = logrus.StandardLogger()
		return
	}
	logger = l
}

func logf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func logWarnf(format string, args ...any) {
	logger.Warnf(format, args...)
}
