package assets

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestScannerFiltersModelFormats(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"chair.glb",
		"lamp.GLTF", // case-insensitive
		"table.obj",
		"readme.txt",
		"texture.png",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("data"), 0o644); err != nil {
			t.Fatalf("write temp file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "hidden.glb"), []byte("data"), 0o644); err != nil {
		t.Fatalf("write nested file: %v", err)
	}

	s := NewScanner()
	got, err := s.Scan(dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 assets, got %d: %+v", len(got), got)
	}
	for _, a := range got {
		if !FormatSupported(a.Format) {
			t.Fatalf("asset %s has unexpected format %q", a.ID, a.Format)
		}
		if a.Format != strings.ToLower(a.Format) {
			t.Fatalf("format not lowercased: %q", a.Format)
		}
		if a.SizeBytes != int64(len("data")) {
			t.Fatalf("asset %s size = %d, want %d", a.ID, a.SizeBytes, len("data"))
		}
		if !filepath.IsAbs(a.Path) {
			t.Fatalf("asset path not absolute: %s", a.Path)
		}
	}
}

func TestScannerExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir on this platform: %v", err)
	}
	hTmp, err := os.MkdirTemp(home, "previewd-assets-*")
	if err != nil {
		t.Skipf("cannot create temp under home: %v", err)
	}
	defer os.RemoveAll(hTmp)
	if err := os.WriteFile(filepath.Join(hTmp, "x.glb"), []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var tildePath string
	if runtime.GOOS == "windows" {
		tildePath = filepath.Join("~", filepath.Base(hTmp))
	} else {
		tildePath = "~/" + filepath.Base(hTmp)
	}
	got, err := NewScanner().Scan(tildePath)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "x.glb" {
		t.Fatalf("unexpected assets: %+v", got)
	}
}

func TestLoadDirWrapper(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "m.obj"), []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "m.obj" || got[0].Name != "m" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestFormatSupported(t *testing.T) {
	for _, ext := range []string{"glb", "GLB", "gltf", "obj"} {
		if !FormatSupported(ext) {
			t.Fatalf("FormatSupported(%q) = false", ext)
		}
	}
	for _, ext := range []string{"png", "txt", ""} {
		if FormatSupported(ext) {
			t.Fatalf("FormatSupported(%q) = true", ext)
		}
	}
}
