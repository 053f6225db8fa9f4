// Package logging builds the zap loggers used by the CLI and TUI.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config contains logging configuration
type Config struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`

	// Format is the output format (json, console)
	Format string `yaml:"format" json:"format"`

	// Output is the destination (stdout, stderr, discard or a file path)
	Output string `yaml:"output" json:"output"`

	// Development enables caller and stack trace annotations
	Development bool `yaml:"development" json:"development"`
}

// DefaultConfig logs warnings and above to stderr
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}
}

// ConfigFromEnv overlays FISCALPRO_LOG_LEVEL, FISCALPRO_LOG_FORMAT and
// FISCALPRO_LOG_OUTPUT on the defaults
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("FISCALPRO_LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("FISCALPRO_LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("FISCALPRO_LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	return cfg
}

// New builds a logger from cfg. An unknown level falls back to info. The
// returned cleanup closes a file output and must be called once the logger
// is no longer used.
func New(cfg Config) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	ws, cleanup, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	core := zapcore.NewCore(encoder, ws, level)
	if cfg.Development {
		return zap.New(core, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), cleanup, nil
	}
	return zap.New(core), cleanup, nil
}

// openOutput resolves an output name. zap.Open handles stdout, stderr and
// file paths, appending to files.
func openOutput(output string) (zapcore.WriteSyncer, func(), error) {
	switch output {
	case "":
		output = "stderr"
	case "discard":
		return zapcore.AddSync(io.Discard), func() {}, nil
	}
	return zap.Open(output)
}

// NewWriter builds a logger writing JSON lines to w, mainly for tests
func NewWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(w), level)
	return zap.New(core)
}
