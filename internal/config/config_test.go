package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := Default()

	if c.Server.Addr != ":8414" {
		t.Errorf("addr = %q", c.Server.Addr)
	}
	if c.Storage.Mode != ModeMemory {
		t.Errorf("mode = %q, want memory", c.Storage.Mode)
	}
	if c.History.Disabled {
		t.Error("history should be on unless disabled")
	}
	if c.History.Path != filepath.Join("data", "history.db") {
		t.Errorf("history path = %q", c.History.Path)
	}
	if len(c.Math.Levels) != 3 {
		t.Errorf("default math levels = %d, want 3", len(c.Math.Levels))
	}
	if c.Reading.MaxColumns != 28 {
		t.Errorf("reading columns = %d, want 28", c.Reading.MaxColumns)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wildkin.yml")
	body := `
server:
  addr: ":9000"
storage:
  mode: file
  data_dir: /tmp/wildkin
math:
  levels:
    - level: 1
      operators: ["+"]
      max_operand: 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Server.Addr != ":9000" {
		t.Errorf("addr = %q", c.Server.Addr)
	}
	if c.Storage.Mode != ModeFile || c.Storage.DataDir != "/tmp/wildkin" {
		t.Errorf("storage = %+v", c.Storage)
	}
	if c.History.Path != filepath.Join("/tmp/wildkin", "history.db") {
		t.Errorf("history path should follow data dir: %q", c.History.Path)
	}
	if len(c.Math.Levels) != 1 || c.Math.Levels[0].MaxOperand != 5 {
		t.Errorf("levels = %+v", c.Math.Levels)
	}
	// Untouched sections still get defaults.
	if c.Reading.MaxColumns != 28 {
		t.Errorf("reading columns = %d", c.Reading.MaxColumns)
	}
}

func TestLoadRejectsBadMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wildkin.yml")
	if err := os.WriteFile(path, []byte("storage:\n  mode: cloud\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown mode")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("WILDKIN_ADDR", ":7777")
	t.Setenv("WILDKIN_STORAGE_MODE", "file")
	t.Setenv("WILDKIN_DATA_DIR", "/tmp/kin")
	t.Setenv("WILDKIN_HISTORY_DISABLED", "true")

	c := Default()
	if err := ParseEnv(c); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if c.Server.Addr != ":7777" {
		t.Errorf("addr = %q", c.Server.Addr)
	}
	if c.Storage.Mode != ModeFile || c.Storage.DataDir != "/tmp/kin" {
		t.Errorf("storage = %+v", c.Storage)
	}
	if !c.History.Disabled {
		t.Error("history should be disabled via env")
	}
}
