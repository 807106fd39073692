package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	mgr := NewConfigManager(path)
	if err := mgr.LoadConfig(); err != nil {
		t.Fatalf("load of missing file should not fail: %v", err)
	}
	if err := mgr.SetEventChannel("guild-1", "chan-1"); err != nil {
		t.Fatalf("set event channel failed: %v", err)
	}

	fresh := NewConfigManager(path)
	if err := fresh.LoadConfig(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	cfg := fresh.GuildConfig("guild-1")
	if cfg == nil || cfg.EventChannelID != "chan-1" {
		t.Fatalf("unexpected guild config: %+v", cfg)
	}
	if fresh.GuildConfig("guild-2") != nil {
		t.Fatal("unconfigured guild should return nil")
	}
}

func TestSetEventChannelUpdatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	mgr := NewConfigManager(path)

	if err := mgr.SetEventChannel("guild-1", "chan-1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := mgr.SetEventChannel("guild-1", "chan-2"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	cfg := mgr.GuildConfig("guild-1")
	if cfg == nil || cfg.EventChannelID != "chan-2" {
		t.Fatalf("expected updated channel, got %+v", cfg)
	}
}

func TestSweepInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	cases := []struct {
		name    string
		content string
		want    time.Duration
	}{
		{"default when unset", `{}`, DefaultSweepInterval},
		{"configured", `{"sweep_interval_seconds": 60}`, 60 * time.Second},
		{"clamped to minimum", `{"sweep_interval_seconds": 1}`, 10 * time.Second},
		{"negative falls back to default", `{"sweep_interval_seconds": -5}`, DefaultSweepInterval},
	}
	for _, c := range cases {
		if err := os.WriteFile(path, []byte(c.content), 0o644); err != nil {
			t.Fatalf("%s: write failed: %v", c.name, err)
		}
		mgr := NewConfigManager(path)
		if err := mgr.LoadConfig(); err != nil {
			t.Fatalf("%s: load failed: %v", c.name, err)
		}
		if got := mgr.SweepInterval(); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}
