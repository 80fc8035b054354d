package config

import (
	"testing"
)

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_MalformedInput(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad.yaml", "addr: :8080\n: broken\n"},
		{"bad.json", `{ "addr": ":8080", "assets_dir": }`},
		{"bad.toml", "addr=:8080\nassets_dir\n"},
	}
	d := t.TempDir()
	for _, c := range cases {
		p := writeTempFile(t, d, c.name, c.content)
		if _, err := Load(p); err == nil {
			t.Fatalf("expected unmarshal error for %s", c.name)
		}
	}
}

func TestLoad_PartialFileLeavesZeroValues(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "partial.yaml", "addr: :6060\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":6060" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	// Unset keys stay zero so main can apply defaults.
	if cfg.Backend != "" || cfg.CacheCapacity != 0 || cfg.SessionTTL != "" || cfg.VisibilityThreshold != 0 {
		t.Fatalf("expected zero values for unset keys: %+v", cfg)
	}
}
