package monitor

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/grovetools/scribe/audio"
	"github.com/grovetools/scribe/errors"
	"github.com/grovetools/scribe/history"
	"github.com/grovetools/scribe/transcribe"
	"github.com/grovetools/scribe/webhook"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is the cadence of the polling loop. The history file
// has no change-notification contract, so the worker re-reads it on a short
// fixed interval instead of watching it.
const DefaultPollInterval = time.Second

// Orchestrator drives monitoring sessions: a timeout-bounded polling loop
// over the upload history, and on a match exactly one
// extract → transcribe → deliver pipeline run.
type Orchestrator struct {
	reader       *history.Reader
	extractor    *audio.Extractor
	transcriber  *transcribe.Transcriber
	webhook      *webhook.Client
	pollInterval time.Duration
	log          *logrus.Entry

	mu      sync.Mutex
	current *Session
}

// New creates an Orchestrator. pollInterval <= 0 selects the default.
func New(reader *history.Reader, extractor *audio.Extractor, transcriber *transcribe.Transcriber, hook *webhook.Client, pollInterval time.Duration, log *logrus.Entry) *Orchestrator {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Orchestrator{
		reader:       reader,
		extractor:    extractor,
		transcriber:  transcriber,
		webhook:      hook,
		pollInterval: pollInterval,
		log:          log,
	}
}

// StartOptions configures one monitoring session.
type StartOptions struct {
	// After is the reference point: only events strictly after it qualify.
	After time.Time

	// Timeout bounds the session; it must be positive.
	Timeout time.Duration

	// NotionURL and Description are caller metadata threaded through
	// unchanged to the webhook payload.
	NotionURL   string
	Description string
}

// Start validates preconditions, cancels any prior session, and launches
// the polling worker. Validation failures are returned before any
// goroutine is started.
func (o *Orchestrator) Start(opts StartOptions) (*Session, error) {
	if opts.Timeout <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "monitoring timeout must be positive").
			WithDetail("timeout", opts.Timeout.String())
	}
	if !o.webhook.Configured() {
		return nil, errors.WebhookNotConfigured()
	}
	if _, err := os.Stat(o.reader.Path()); err != nil {
		return nil, errors.HistoryNotFound(o.reader.Path())
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	// Only one session at a time: a new start cancels the old session and
	// waits for its worker to exit before proceeding.
	if o.current != nil {
		o.current.Stop()
		<-o.current.Done()
	}

	session := newSession(opts.After.UTC(), opts.Timeout, opts.NotionURL, opts.Description)
	o.current = session

	o.log.WithFields(logrus.Fields{
		"after":   session.after.Format(time.RFC3339),
		"timeout": session.timeout.String(),
	}).Debug("Starting monitoring session")

	go o.run(session)
	return session, nil
}

// Stop cancels the active session, if any. It does not wait; use the
// session's Done channel for that.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil {
		o.current.Stop()
	}
}

// StartMonitoring is the callback-style surface over Start. onStatus may
// fire many times; onResult at most once, only on transcription success;
// onComplete exactly once on every path.
func (o *Orchestrator) StartMonitoring(after time.Time, timeoutMinutes int, notionURL, description string,
	onResult func(text, remoteURL, localPath string), onStatus func(message string), onComplete func()) error {

	session, err := o.Start(StartOptions{
		After:       after,
		Timeout:     time.Duration(timeoutMinutes) * time.Minute,
		NotionURL:   notionURL,
		Description: description,
	})
	if err != nil {
		return err
	}

	go func() {
		for event := range session.Events() {
			switch e := event.(type) {
			case Status:
				if onStatus != nil {
					onStatus(e.Message)
				}
			case Result:
				if onResult != nil {
					onResult(e.Text, e.RemoteURL, e.LocalPath)
				}
			case Complete:
				if onComplete != nil {
					onComplete()
				}
			}
		}
	}()
	return nil
}

// StopMonitoring is the callback-style counterpart of Stop.
func (o *Orchestrator) StopMonitoring() {
	o.Stop()
}

// run is the session worker. It owns the session's lifecycle entirely:
// every exit path emits Complete exactly once and closes Done.
func (o *Orchestrator) run(s *Session) {
	defer close(s.done)
	defer s.complete(OutcomeFailed) // no-op on every normal path

	start := time.Now()
	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	for {
		// Cancellation is checked at the top of every tick.
		if s.ctx.Err() != nil {
			s.status("Monitoring cancelled")
			o.log.Debug("Monitoring stopped by caller")
			s.complete(OutcomeCancelled)
			return
		}

		elapsed := time.Since(start)
		if elapsed >= s.timeout {
			s.status("Time limit reached - monitoring stopped")
			o.log.Debug("Monitoring timeout reached")
			s.complete(OutcomeTimedOut)
			return
		}

		s.status(fmt.Sprintf("Monitoring for uploads... %s remaining", formatRemaining(s.timeout-elapsed)))

		events := o.reader.Read()
		found := history.FindNewest(s.ctx, events, s.after)
		if found != nil {
			// Re-check: a file discovered after cancellation was requested
			// must not be processed.
			if s.ctx.Err() != nil {
				s.status("Monitoring cancelled")
				s.complete(OutcomeCancelled)
				return
			}
			o.runPipeline(s, found)
			return
		}

		select {
		case <-s.ctx.Done():
		case <-ticker.C:
		}
	}
}

// runPipeline processes the found artifact. Once entered, it runs to
// completion regardless of cancellation; the session terminates afterwards
// whether or not any stage failed.
func (o *Orchestrator) runPipeline(s *Session, found *history.UploadEvent) {
	s.status(fmt.Sprintf("Found audio/video file: %s", found.FileName))
	o.log.WithField("file", found.FilePath).Info("New upload found")

	// The pipeline is not cancellable mid-flight.
	ctx := context.Background()

	if _, err := os.Stat(found.FilePath); err != nil {
		s.status(fmt.Sprintf("File not found: %s", found.FilePath))
		o.log.WithError(err).WithField("path", found.FilePath).Error("Found artifact is missing on disk")
		s.complete(OutcomeFailed)
		return
	}

	s.status("Extracting audio...")
	wavPath, err := o.extractor.Extract(ctx, found.FilePath)
	if err != nil {
		s.status(fmt.Sprintf("Audio extraction failed: %s", stageMessage(err)))
		o.log.WithError(err).Error("Audio extraction failed")
		s.complete(OutcomeFailed)
		return
	}
	// The temporary WAV is removed on every exit path below, including
	// transcription failure.
	defer func() {
		if err := os.Remove(wavPath); err != nil {
			o.log.WithError(err).WithField("path", wavPath).Warn("Failed to remove temporary audio file")
		} else {
			o.log.WithField("path", wavPath).Debug("Removed temporary audio file")
		}
	}()

	s.status("Transcribing audio...")
	text, err := o.transcriber.Transcribe(ctx, wavPath)
	if err != nil {
		if errors.Is(err, errors.ErrCodeTranscribeNoOutput) {
			s.status("Transcription output not found")
		} else {
			s.status(fmt.Sprintf("Transcription failed: %s", stageMessage(err)))
		}
		o.log.WithError(err).Error("Transcription failed")
		s.complete(OutcomeFailed)
		return
	}

	s.status("Sending transcription to webhook...")
	if o.webhook.DeliverTranscription(ctx, s.notionURL, s.description, text, found.URL, found.FilePath) {
		s.status("Transcription sent to webhook")
	} else {
		// Delivery failure is reported but does not block completion.
		s.status("Webhook delivery failed")
	}

	s.result(text, found.URL, found.FilePath)
	s.complete(OutcomeCompleted)
}

// stageMessage extracts a one-line human-readable reason from a stage error.
func stageMessage(err error) string {
	if scribeErr, ok := err.(*errors.ScribeError); ok {
		if stderr, ok := scribeErr.Details["stderr"].(string); ok && stderr != "" {
			return stderr
		}
		return scribeErr.Message
	}
	return err.Error()
}

// formatRemaining renders a countdown as MM:SS, or HH:MM:SS above an hour.
func formatRemaining(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
