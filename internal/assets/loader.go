// Package assets finds and loads the 3D models that previews are rendered
// from. A Loader resolves a descriptor's source key to scene data; the
// scanner builds the catalog the HTTP layer serves.
//
// Files:
//   - loader.go: Loader contract
//   - handle.go: loaded scene data and its content digest
//   - scanner.go: asset root discovery
//   - dir.go: local-directory loader
//   - http.go: CDN/origin loader
//   - errors.go: typed errors and predicates
package assets

import "context"

// Loader resolves a source key to a loaded scene.
type Loader interface {
	// Load fetches the asset behind key. It honors ctx cancellation and
	// returns a typed error (see IsNotFound, IsUnsupportedFormat,
	// IsLoadFailure) on failure.
	Load(ctx context.Context, key string) (*SceneHandle, error)
}
