// Package preview coordinates the full snapshot pipeline for storefront
// consumers: visibility gating, single-flight render admission, capture, and
// the snapshot cache. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, lifecycle (Run/Shutdown).
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - session.go: per-consumer session state machine (Phase).
//   - mount.go: RequestPreview/CancelPreview consumer lifecycle.
//   - admission.go: visibility triggers and queue admission.
//   - render.go: the render job run per admitted request, plus Warm.
//   - query.go: GetPreview/GetImage/ListAssets read paths.
//   - status.go: Status reporting for /status.
//   - janitor.go: idle-session expiry.
//   - errors.go: error types and helpers (IsSessionNotFound, IsNotReady, ...).
//   - events.go: EventPublisher contract; eventpub_memory.go is the test sink.
//   - metrics.go: Prometheus collectors.
//
// A consumer session walks Idle -> AwaitingVisible -> Queued -> Rendering ->
// Cached, with Errored as the terminal failure phase and cache hits
// short-circuiting straight to Cached. Cancellation is cooperative: pending
// requests leave the queue immediately, admitted renders complete and their
// result is dropped.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (NewWithConfig, RequestPreview, CancelPreview,
// ReportVisibility, GetPreview, GetImage, Warm, Status). Internal types are
// subject to change.
package preview
