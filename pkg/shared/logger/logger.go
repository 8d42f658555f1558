package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/groupgrep/groupgrep/pkg/shared/config"
)

// NewLogger builds a named hclog logger. When logger.path is set in the
// config the diagnostic stream is appended to that file; stdout is used
// otherwise. The file is never rotated.
func NewLogger(config *config.Config, name string) hclog.Logger {
	var logLevel hclog.Level

	if config != nil && config.Logger.Level != "" {
		logLevel = getLogLevel(strings.ToUpper(config.Logger.Level))
	} else {
		// env variable has the second priority
		logLevelEnv := os.Getenv("GROUPGREP_LOG_LEVEL")
		logLevel = getLogLevel(strings.ToUpper(logLevelEnv))
	}

	var output io.Writer = os.Stdout
	if config != nil && config.Logger.Path != "" {
		file, err := os.OpenFile(config.Logger.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file %q, logging to stdout: %v\n", config.Logger.Path, err)
		} else {
			output = file
		}
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: false,
		Output:      output,
		Level:       logLevel,
	})

	return logger
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
