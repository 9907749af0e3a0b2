package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/xenopict/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
colormap = "xenosite_bwr"
scale = 24
diverging = false
formats = ["svg", "png"]

[cache]
dir = "/tmp/xp"
ttl = "36h"

[server]
addr = ":9000"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Colormap != "xenosite_bwr" || cfg.Scale != 24 {
		t.Errorf("options = %+v", cfg.Options)
	}
	if cfg.IsDiverging() {
		t.Error("diverging = true, want false")
	}
	if len(cfg.Formats) != 2 {
		t.Errorf("formats = %v", cfg.Formats)
	}
	if cfg.Cache.Dir != "/tmp/xp" || cfg.Cache.TTL.Duration != 36*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.addr() != ":9000" {
		t.Errorf("addr() = %q, want :9000", cfg.addr())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"unknown key", writeConfig(t, "colour = \"red\"\n"), errors.ErrCodeInvalidConfig},
		{"bad syntax", writeConfig(t, "scale = \n"), errors.ErrCodeInvalidConfig},
		{"bad duration", writeConfig(t, "[cache]\nttl = \"soon\"\n"), errors.ErrCodeInvalidConfig},
		{"missing explicit file", filepath.Join(t.TempDir(), "nope.toml"), errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.addr() != defaultAddr {
		t.Errorf("addr() = %q, want %q", cfg.addr(), defaultAddr)
	}
}
