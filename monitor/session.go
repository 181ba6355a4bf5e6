package monitor

import (
	"context"
	"sync"
	"time"
)

// eventBuffer sizes the session event channel. Status events are dropped
// when the consumer falls this far behind; Result and Complete never are.
const eventBuffer = 256

// Session is the in-memory state of one monitoring run. It is created by
// Orchestrator.Start, owned exclusively by its worker goroutine, and
// discarded once the stream completes. At most one Session is active per
// Orchestrator.
type Session struct {
	after       time.Time
	timeout     time.Duration
	notionURL   string
	description string

	ctx    context.Context
	cancel context.CancelFunc

	events       chan SessionEvent
	completeOnce sync.Once
	done         chan struct{}
}

func newSession(after time.Time, timeout time.Duration, notionURL, description string) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		after:       after,
		timeout:     timeout,
		notionURL:   notionURL,
		description: description,
		ctx:         ctx,
		cancel:      cancel,
		events:      make(chan SessionEvent, eventBuffer),
		done:        make(chan struct{}),
	}
}

// Events returns the session's event stream. The consumer must drain it
// until it is closed; the final event is always a Complete.
func (s *Session) Events() <-chan SessionEvent {
	return s.events
}

// Done is closed when the worker has fully exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stop requests cooperative cancellation. The worker stops within one poll
// tick; a pipeline already in flight runs to completion ("cancel the
// search", not "abort in-flight work").
func (s *Session) Stop() {
	s.cancel()
}

// status emits a progress line. If the consumer has fallen far enough
// behind to fill the buffer the update is dropped; progress lines are
// notifications, not state.
func (s *Session) status(message string) {
	select {
	case s.events <- Status{Message: message}:
	default:
	}
}

// result emits the at-most-once transcription result.
func (s *Session) result(text, remoteURL, localPath string) {
	s.events <- Result{Text: text, RemoteURL: remoteURL, LocalPath: localPath}
}

// complete emits the terminal event and closes the stream. Safe to call
// multiple times; only the first wins.
func (s *Session) complete(outcome Outcome) {
	s.completeOnce.Do(func() {
		s.events <- Complete{Outcome: outcome}
		close(s.events)
	})
}
