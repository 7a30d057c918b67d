package main

import (
	"context"
	"io"
	"log/slog"
)

// Dependencies holds the services and configuration for the conversion.
type Dependencies struct {
	Ctx              context.Context
	Stdout           io.Writer
	Logger           *slog.Logger
	ProgressInterval int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Input  string `arg:"" type:"existingfile" help:"Gzip-compressed WARC archive"`
	Output string `arg:"" help:"TFRecord file to create or truncate"`

	LogLevel       string `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"FLICKRWARC_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	Compress       bool   `help:"Write the TFRecord stream gzip-compressed"`
	Manifest       string `type:"path" env:"FLICKRWARC_MANIFEST" help:"SQLite database recording the run and its examples"`
	MetricsFile    string `name:"metrics-file" type:"path" env:"FLICKRWARC_METRICS_FILE" help:"Write run metrics to this Prometheus textfile"`
	ExpectedImages uint   `name:"expected-images" default:"1000000" help:"Expected number of images, sizes the consumed-URL filter"`
	MaxRecordSize  int64  `name:"max-record-size" default:"1073741824" help:"Largest WARC record body accepted, in bytes"`
}

// Level maps the --log-level flag onto a slog level.
func (c *CLI) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
