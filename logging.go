package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// setupLogging installs the default slog logger. Terminal output goes
// through a charmbracelet/log handler; jsonOut switches to slog's JSON handler.
func setupLogging(w io.Writer, level string, jsonOut bool) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	var handler slog.Handler
	if jsonOut {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Prefix:          "rockfall",
			Level:           log.Level(lvl),
		})
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
