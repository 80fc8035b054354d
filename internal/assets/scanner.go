package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"previewd/internal/common/fsutil"
	"previewd/pkg/types"
)

// modelExts lists the file extensions the render path accepts.
var modelExts = map[string]bool{
	"glb":  true,
	"gltf": true,
	"obj":  true,
}

// FormatSupported reports whether ext (without the dot, any case) is a
// renderable model format.
func FormatSupported(ext string) bool {
	return modelExts[strings.ToLower(ext)]
}

// Scanner discovers renderable model files under an asset root.
type Scanner struct{}

// NewScanner constructs a Scanner.
func NewScanner() *Scanner { return &Scanner{} }

// Scan reads dir (non-recursive) and builds catalog entries from filenames.
// ID is the full filename (including extension); Path is the absolute file path.
func (s *Scanner) Scan(dir string) ([]types.Asset, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var out []types.Asset
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
		if !FormatSupported(ext) {
			continue
		}
		var size int64
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		out = append(out, types.Asset{
			ID:        name,
			Name:      strings.TrimSuffix(name, filepath.Ext(name)),
			Path:      filepath.Join(abs, name),
			Format:    ext,
			SizeBytes: size,
		})
	}
	return out, nil
}

// LoadDir scans dir with a default scanner.
func LoadDir(dir string) ([]types.Asset, error) {
	return NewScanner().Scan(dir)
}
