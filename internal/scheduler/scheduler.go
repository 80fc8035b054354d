// Package scheduler serializes access to the hardware rendering contexts.
// Every preview render goes through one process-wide FIFO queue; at most
// `slots` requests hold a context at any instant (one, unless configured
// otherwise), no matter how many consumers want previews at once.
package scheduler

import (
	"sync"

	"github.com/rs/zerolog"
)

// RequestID identifies one render request for cancellation and completion.
// Zero is never a valid id.
type RequestID uint64

// RequestState tags the lifecycle of a render request. Legal transitions are
// Pending→Admitted→Done and Pending→Cancelled; anything else is a caller bug
// the scheduler rejects and logs instead of corrupting queue state.
type RequestState int

const (
	StatePending RequestState = iota
	StateAdmitted
	StateCancelled
	StateDone
)

func (s RequestState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAdmitted:
		return "admitted"
	case StateCancelled:
		return "cancelled"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultSlots      = 1
	DefaultMaxPending = 256
)

// AdmitFunc runs when a request is promoted to active. It is invoked outside
// the scheduler lock and must eventually lead to exactly one Finish call for
// the given id; a missed Finish wedges the queue for every later request.
type AdmitFunc func(id RequestID)

type request struct {
	id    RequestID
	key   string
	state RequestState
	admit AdmitFunc
}

// Config carries scheduler tunables.
type Config struct {
	// Slots is the number of requests that may be admitted concurrently,
	// i.e. the size of the rendering context pool.
	Slots int
	// MaxPending bounds the waiting queue; Enqueue beyond it fails fast.
	MaxPending int
	Logger     zerolog.Logger
}

// Scheduler is the single-flight FIFO admission queue.
type Scheduler struct {
	mu         sync.Mutex
	slots      int
	maxPending int
	pending    []*request // FIFO; cancelled entries stay until advance skips them
	byID       map[RequestID]*request
	live       int // pending entries not yet cancelled
	active     int
	nextID     RequestID
	log        zerolog.Logger
}

// New constructs a Scheduler, applying defaults for unset fields.
func New(cfg Config) *Scheduler {
	s := &Scheduler{
		byID: make(map[RequestID]*request),
		log:  cfg.Logger,
	}
	if cfg.Slots <= 0 {
		s.slots = DefaultSlots
	} else {
		s.slots = cfg.Slots
	}
	if cfg.MaxPending <= 0 {
		s.maxPending = DefaultMaxPending
	} else {
		s.maxPending = cfg.MaxPending
	}
	return s
}

// Enqueue appends a request for key and returns its id. If a slot is free the
// request is admitted before Enqueue returns (the admit callback runs on the
// calling goroutine, after the internal lock is released). When the waiting
// queue is full, Enqueue returns a queue-full error and no request exists.
func (s *Scheduler) Enqueue(key string, admit AdmitFunc) (RequestID, error) {
	s.mu.Lock()
	if s.live >= s.maxPending {
		s.mu.Unlock()
		queueRejected.Inc()
		return 0, ErrQueueFull(key, s.maxPending)
	}
	s.nextID++
	id := s.nextID
	req := &request{id: id, key: key, state: StatePending, admit: admit}
	s.pending = append(s.pending, req)
	s.byID[id] = req
	s.live++
	queueEnqueued.Inc()
	queueDepth.Set(float64(s.live))
	admits := s.advanceLocked()
	s.mu.Unlock()

	s.log.Debug().Uint64("request_id", uint64(id)).Str("key", key).Msg("render request enqueued")
	runAdmits(admits)
	return id, nil
}

// Cancel withdraws a request. A Pending request is discarded and will be
// skipped at admission time. An Admitted request is left alone: the
// in-flight render completes and its Finish frees the slot, while the caller
// is responsible for discarding the result. Unknown ids are ignored.
func (s *Scheduler) Cancel(id RequestID) {
	s.mu.Lock()
	req, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	switch req.state {
	case StatePending:
		req.state = StateCancelled
		delete(s.byID, id)
		s.live--
		queueCancelled.Inc()
		queueDepth.Set(float64(s.live))
		s.mu.Unlock()
		s.log.Debug().Uint64("request_id", uint64(id)).Str("key", req.key).Msg("pending render request cancelled")
	case StateAdmitted:
		s.mu.Unlock()
		s.log.Debug().Uint64("request_id", uint64(id)).Str("key", req.key).Msg("cancel after admission ignored; render will finish")
	default:
		s.mu.Unlock()
	}
}

// Finish concludes the admitted request id, frees its slot and admits the
// next live request. Exactly one Finish per admission: a second call, or a
// call for a request that was never admitted, is rejected and logged.
func (s *Scheduler) Finish(id RequestID) {
	s.mu.Lock()
	req, ok := s.byID[id]
	if !ok || req.state != StateAdmitted {
		state := "unknown"
		if ok {
			state = req.state.String()
		}
		s.mu.Unlock()
		s.log.Error().Uint64("request_id", uint64(id)).Str("state", state).Msg("finish for request that is not admitted")
		return
	}
	req.state = StateDone
	delete(s.byID, id)
	s.active--
	queueFinished.Inc()
	queueActive.Set(float64(s.active))
	admits := s.advanceLocked()
	s.mu.Unlock()
	runAdmits(admits)
}

// advanceLocked promotes pending heads into free slots, discarding cancelled
// entries along the way. The loop is bounded by the queue length; relative
// order of the surviving requests is untouched.
func (s *Scheduler) advanceLocked() []*request {
	var admits []*request
	for s.active < s.slots && len(s.pending) > 0 {
		head := s.pending[0]
		s.pending[0] = nil
		s.pending = s.pending[1:]
		if head.state == StateCancelled {
			continue
		}
		head.state = StateAdmitted
		s.active++
		s.live--
		admits = append(admits, head)
	}
	if len(admits) > 0 {
		queueAdmitted.Add(float64(len(admits)))
		queueActive.Set(float64(s.active))
		queueDepth.Set(float64(s.live))
	}
	return admits
}

func runAdmits(reqs []*request) {
	for _, r := range reqs {
		r.admit(r.id)
	}
}

// Depth returns the number of live requests waiting for admission.
func (s *Scheduler) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Active returns the number of requests currently holding a slot.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Slots returns the configured context pool size.
func (s *Scheduler) Slots() int { return s.slots }

// MaxPending returns the configured waiting-queue bound.
func (s *Scheduler) MaxPending() int { return s.maxPending }

// State reports the request's current lifecycle state, if still tracked.
// Finished and cancelled requests are forgotten and report ok=false.
func (s *Scheduler) State(id RequestID) (RequestState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.byID[id]
	if !ok {
		return StateDone, false
	}
	return req.state, true
}
