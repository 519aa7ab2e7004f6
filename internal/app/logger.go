package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide slog.Logger shared by the web
// server and the mail worker. LOG_FORMAT=json switches to the JSON
// handler for log shipping; everything else gets readable text.
func NewLogger(cfg *Config) *slog.Logger {
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
}
