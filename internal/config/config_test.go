package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.TypingSpeedMS != DefaultTypingSpeedMS {
		t.Errorf("typing speed = %d, want %d", cfg.TypingSpeedMS, DefaultTypingSpeedMS)
	}
	if cfg.HighlightCapMS != DefaultHighlightCapMS {
		t.Errorf("highlight cap = %d, want %d", cfg.HighlightCapMS, DefaultHighlightCapMS)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellscribe.toml")
	content := `
typing_speed_ms = 40
highlight_cap_ms = 150
listen_addr = ":8700"
pace_script = "pace.lua"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.TypingSpeed() != 40*time.Millisecond {
		t.Errorf("typing speed = %v", cfg.TypingSpeed())
	}
	if cfg.HighlightCap() != 150*time.Millisecond {
		t.Errorf("highlight cap = %v", cfg.HighlightCap())
	}
	if cfg.ListenAddr != ":8700" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.PaceScript != "pace.lua" {
		t.Errorf("pace script = %q", cfg.PaceScript)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("typing_speed_ms = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.TypingSpeedMS != DefaultTypingSpeedMS {
		t.Error("parse failure should fall back to defaults")
	}
}

func TestLoadNegativeValuesClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neg.toml")
	if err := os.WriteFile(path, []byte("typing_speed_ms = -5\nhighlight_cap_ms = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.TypingSpeedMS != DefaultTypingSpeedMS || cfg.HighlightCapMS != DefaultHighlightCapMS {
		t.Errorf("negative values not clamped: %+v", cfg)
	}
}

func TestWatchReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cellscribe.toml")
	if err := os.WriteFile(path, []byte("typing_speed_ms = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan Config, 1)
	w, err := Watch(path, func(cfg Config) {
		select {
		case got <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("typing_speed_ms = 75\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if cfg.TypingSpeedMS != 75 {
			t.Errorf("reloaded typing speed = %d, want 75", cfg.TypingSpeedMS)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
