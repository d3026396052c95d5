package gridui

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// NewLogger creates an hclog logger with the package defaults.
// Setting GRIDUI_JSON_LOG=1 switches to JSON output.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv("GRIDUI_JSON_LOG") == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// LogLevel returns the configured log level from the environment
func LogLevel() string {
	level := os.Getenv("GRIDUI_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	return level
}
