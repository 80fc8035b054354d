package types

// Asset represents a renderable 3D product asset discoverable by the daemon.
type Asset struct {
	// Stable identifier for the asset (the source key consumers request).
	// example: gilded-astrolabe.glb
	ID string `json:"id" example:"gilded-astrolabe.glb"`
	// Human-friendly name.
	// example: Gilded Astrolabe
	Name string `json:"name" example:"Gilded Astrolabe"`
	// Absolute path to the asset file on disk (empty for remote assets).
	// example: /srv/storefront/assets/gilded-astrolabe.glb
	Path string `json:"path,omitempty" example:"/srv/storefront/assets/gilded-astrolabe.glb"`
	// File format inferred from the extension (glb, gltf, obj).
	// example: glb
	Format string `json:"format,omitempty" example:"glb"`
	// Size of the asset file in bytes.
	// example: 1048576
	SizeBytes int64 `json:"size_bytes,omitempty" example:"1048576"`
}

// Descriptor identifies one renderable asset together with the snapshot size
// a consumer wants. SourceKey doubles as the snapshot cache key: the first
// successful render of an asset is reused by every later consumer of the
// same key regardless of their size hint.
type Descriptor struct {
	// Asset source key; resolved by the configured loader.
	// example: gilded-astrolabe.glb
	SourceKey string `json:"source_key" example:"gilded-astrolabe.glb"`
	// Preferred snapshot edge length in pixels. Zero means the daemon default.
	// example: 256
	SizeHint int `json:"size_hint,omitempty" example:"256"`
}
