package monitor

// Outcome classifies how a monitoring session ended.
type Outcome string

const (
	// OutcomeCompleted means an artifact was found and the pipeline ran to
	// the end. Delivery problems are reported via status, not the outcome.
	OutcomeCompleted Outcome = "completed"

	// OutcomeFailed means an artifact was found but a pipeline stage failed.
	// The session does not resume polling for a different file.
	OutcomeFailed Outcome = "failed"

	// OutcomeTimedOut means the time budget elapsed with no qualifying artifact.
	OutcomeTimedOut Outcome = "timed_out"

	// OutcomeCancelled means the caller stopped the session.
	OutcomeCancelled Outcome = "cancelled"
)

// SessionEvent is one event on a session's stream. It is a closed sum:
// Status, Result or Complete. Status may arrive many times; Result at most
// once, only when transcription succeeded; Complete exactly once, last,
// after which the stream is closed.
type SessionEvent interface {
	sessionEvent()
}

// Status is a human-readable one-line progress update. It is a
// notification, never a decision point.
type Status struct {
	Message string
}

// Result carries a successful transcription together with its source
// references.
type Result struct {
	Text      string
	RemoteURL string
	LocalPath string
}

// Complete terminates the stream on every path, normal or not.
type Complete struct {
	Outcome Outcome
}

func (Status) sessionEvent()   {}
func (Result) sessionEvent()   {}
func (Complete) sessionEvent() {}
