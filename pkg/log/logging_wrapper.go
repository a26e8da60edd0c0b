package log

import (
	"strings"

	"github.com/tacusci/logging/v2"
)

var Debug = func(format string, a ...interface{}) {
	logging.Debug(format, a...) //nolint
}

var Info = func(format string, a ...interface{}) {
	logging.Info(format, a...) //nolint
}

var Warn = func(format string, a ...interface{}) {
	logging.Warn(format, a...) //nolint
}

var Error = func(format string, a ...interface{}) {
	logging.Error(format, a...) //nolint
}

var Fatal = func(format string, a ...interface{}) {
	logging.Fatal(format, a...) //nolint
}

// LevelEnv names the logging level. When set it wins over the
// config file's debug flag.
const LevelEnv = "DRAGON_FRAMES_LOGGING_LEVEL"

// Configure sets the global logging level from its name, as read
// from LevelEnv. Unknown names fall back to info.
func Configure(level string) {
	logging.CallbackLabelLevel = 5
	logging.ColorLogLevelLabelOnly = true

	switch strings.ToLower(level) {
	case "silent":
		logging.CurrentLoggingLevel = logging.SilentLevel
	case "warn":
		logging.CurrentLoggingLevel = logging.WarnLevel
	case "debug":
		logging.CurrentLoggingLevel = logging.DebugLevel
		logging.CallbackLabel = true
	default:
		logging.CurrentLoggingLevel = logging.InfoLevel
	}
}

// Silent reports whether all log output is suppressed.
func Silent() bool {
	return logging.CurrentLoggingLevel == logging.SilentLevel
}
