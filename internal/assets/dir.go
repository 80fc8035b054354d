package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"previewd/internal/common/fsutil"
)

// DirLoader serves assets from a local directory. Source keys are paths
// relative to the root; keys that resolve outside the root are treated as
// missing.
type DirLoader struct {
	root string
}

// NewDirLoader resolves root (with ~ expansion) and verifies it exists.
func NewDirLoader(root string) (*DirLoader, error) {
	base, err := fsutil.ExpandHome(root)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("asset root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset root %s is not a directory", abs)
	}
	return &DirLoader{root: abs}, nil
}

// Root returns the absolute asset root.
func (l *DirLoader) Root() string { return l.root }

func (l *DirLoader) Load(ctx context.Context, key string) (*SceneHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrLoadFailure(key, err)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(key)), ".")
	if !FormatSupported(ext) {
		return nil, ErrUnsupportedFormat(key)
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil, ErrNotFound(key)
	}
	data, err := os.ReadFile(filepath.Join(l.root, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound(key)
		}
		return nil, ErrLoadFailure(key, err)
	}
	return NewSceneHandle(key, ext, data), nil
}
