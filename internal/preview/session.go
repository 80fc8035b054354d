package preview

import (
	"context"
	"time"

	"previewd/internal/scheduler"
	"previewd/pkg/types"
)

// Phase is the fine-grained pipeline state of one consumer session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingVisible
	PhaseQueued
	PhaseRendering
	PhaseCached
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingVisible:
		return "awaiting_visible"
	case PhaseQueued:
		return "queued"
	case PhaseRendering:
		return "rendering"
	case PhaseCached:
		return "cached"
	case PhaseErrored:
		return "errored"
	}
	return "unknown"
}

// apiState collapses the pipeline phase into the coarse state the page acts
// on: keep the placeholder, swap in the snapshot, or fall back for good.
func (p Phase) apiState() string {
	switch p {
	case PhaseCached:
		return types.PreviewStateReady
	case PhaseErrored:
		return types.PreviewStateError
	}
	return types.PreviewStateLoading
}

// session is one consumer's preview state. All fields are guarded by the
// Manager mutex.
type session struct {
	id    string
	desc  types.Descriptor
	phase Phase

	hasError bool
	errMsg   string

	// requestID is nonzero while a render request exists for this session.
	requestID scheduler.RequestID

	createdAt  time.Time
	lastActive time.Time

	// unmounted marks a consumer that went away; any in-flight result is
	// dropped instead of cached.
	unmounted bool
	// cancel stops the visibility watcher.
	cancel context.CancelFunc
}

func (s *session) resource(hasImage bool) types.PreviewResource {
	res := types.PreviewResource{
		ID:             s.id,
		State:          s.phase.apiState(),
		Phase:          s.phase.String(),
		SourceKey:      s.desc.SourceKey,
		SizeHint:       s.desc.SizeHint,
		HasImage:       hasImage,
		Error:          s.errMsg,
		CreatedUnix:    s.createdAt.Unix(),
		LastActiveUnix: s.lastActive.Unix(),
	}
	if s.phase == PhaseQueued || s.phase == PhaseRendering {
		res.RequestID = uint64(s.requestID)
	}
	return res
}
