package assets

import (
	"crypto/sha256"
	"encoding/binary"
)

// SceneHandle is a fully loaded asset, ready to attach to a render scene.
// The digest pins the content: two loads of the same bytes produce the same
// digest regardless of where they were fetched from.
type SceneHandle struct {
	SourceKey string
	Format    string
	Data      []byte

	digest [sha256.Size]byte
}

// NewSceneHandle wraps loaded asset bytes and computes their digest.
func NewSceneHandle(sourceKey, format string, data []byte) *SceneHandle {
	return &SceneHandle{
		SourceKey: sourceKey,
		Format:    format,
		Data:      data,
		digest:    sha256.Sum256(data),
	}
}

// Digest returns the SHA-256 of the scene data.
func (h *SceneHandle) Digest() [sha256.Size]byte { return h.digest }

// Digest64 folds the digest into a uint64, used to seed deterministic
// rendering of the scene.
func (h *SceneHandle) Digest64() uint64 {
	return binary.BigEndian.Uint64(h.digest[:8])
}

// Size returns the scene data length in bytes.
func (h *SceneHandle) Size() int { return len(h.Data) }
