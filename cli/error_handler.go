package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/scribe/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a scribe.yml with at least history_path set.\n")
		fmt.Fprintf(os.Stderr, "Run 'scribe config schema' to see all available settings.\n")
		return err

	case errors.ErrCodeHistoryNotFound:
		if scribeErr, ok := err.(*errors.ScribeError); ok {
			fmt.Fprintf(os.Stderr, "❌ Upload history file not found: %s\n", scribeErr.Details["path"])
			fmt.Fprintf(os.Stderr, "Check history_path in scribe.yml and make sure the capture tool has run at least once.\n")
		}
		return err

	case errors.ErrCodeWebhookNotConfigured:
		fmt.Fprintf(os.Stderr, "❌ No webhook URL configured.\n")
		fmt.Fprintf(os.Stderr, "Set webhook_url in scribe.yml or export WEBHOOK_URL.\n")
		return err

	case errors.ErrCodeCommandNotFound:
		fmt.Fprintf(os.Stderr, "❌ Required command not found. Make sure ffmpeg and transcribe-anything are installed and on PATH.\n")
		return err

	case errors.ErrCodeCommandTimeout:
		if scribeErr, ok := err.(*errors.ScribeError); ok {
			fmt.Fprintf(os.Stderr, "❌ Command '%s' did not finish within %s\n",
				scribeErr.Details["command"], scribeErr.Details["timeout"])
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if scribeErr, ok := err.(*errors.ScribeError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", scribeErr.ToJSON())
			}
		}
		return err
	}
}
