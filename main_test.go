package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/rockfall/config"
)

func TestSetupLogging(t *testing.T) {
	saved := slog.Default()
	defer slog.SetDefault(saved)

	tests := []struct {
		name    string
		level   string
		json    bool
		wantErr bool
	}{
		{"terminal info", "info", false, false},
		{"json debug", "debug", true, false},
		{"upper case", "WARN", false, false},
		{"unknown", "loud", false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := setupLogging(&buf, tc.level, tc.json)
			if (err != nil) != tc.wantErr {
				t.Fatalf("setupLogging(%q) error = %v, wantErr %v", tc.level, err, tc.wantErr)
			}
			if err != nil {
				return
			}
			slog.Error("probe", "key", "value")
			if !strings.Contains(buf.String(), "probe") {
				t.Errorf("log output %q missing message", buf.String())
			}
		})
	}
}

func TestDefaultsCommand(t *testing.T) {
	saved := slog.Default()
	defer slog.SetDefault(saved)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"defaults"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("defaults: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(out.Bytes(), &cfg); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if cfg.Arena.Width != config.Default().Arena.Width {
		t.Errorf("arena width = %g, want default", cfg.Arena.Width)
	}
}
