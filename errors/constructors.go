package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *ScribeError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ScribeError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// HistoryNotFound creates an error for a missing upload history file
func HistoryNotFound(path string) *ScribeError {
	return New(ErrCodeHistoryNotFound, fmt.Sprintf("upload history file not found: %s", path)).
		WithDetail("path", path)
}

// HistoryParse creates an error for an unparseable upload history file
func HistoryParse(path string, err error) *ScribeError {
	return Wrap(err, ErrCodeHistoryParse, fmt.Sprintf("failed to parse upload history: %s", path)).
		WithDetail("path", path)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *ScribeError {
	scribeErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		scribeErr = scribeErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return scribeErr
}

// CommandTimeout creates an error for a command exceeding its time budget
func CommandTimeout(cmd string, timeout string) *ScribeError {
	return New(ErrCodeCommandTimeout, fmt.Sprintf("command timed out after %s: %s", timeout, cmd)).
		WithDetail("command", cmd).
		WithDetail("timeout", timeout)
}

// CommandNotFound creates an error for a binary missing from PATH
func CommandNotFound(cmd string) *ScribeError {
	return New(ErrCodeCommandNotFound, fmt.Sprintf("command not found: %s", cmd)).
		WithDetail("command", cmd)
}

// ExtractFailed creates an audio extraction failure error carrying the
// transcoder's diagnostic output.
func ExtractFailed(input string, stderr string, err error) *ScribeError {
	return Wrap(err, ErrCodeExtractFailed, fmt.Sprintf("audio extraction failed for %s", input)).
		WithDetail("input", input).
		WithDetail("stderr", stderr)
}

// ExtractNoOutput creates an error for a transcoder run that exited cleanly
// but produced no output file.
func ExtractNoOutput(output string) *ScribeError {
	return New(ErrCodeExtractNoOutput, fmt.Sprintf("audio extraction produced no output file: %s", output)).
		WithDetail("output", output)
}

// TranscribeFailed creates a transcription engine failure error
func TranscribeFailed(audio string, err error) *ScribeError {
	return Wrap(err, ErrCodeTranscribeFailed, fmt.Sprintf("transcription failed for %s", audio)).
		WithDetail("audio", audio)
}

// TranscribeNoOutput creates an error for an engine run that returned without
// writing its output artifact.
func TranscribeNoOutput(expected string) *ScribeError {
	return New(ErrCodeTranscribeNoOutput, fmt.Sprintf("transcription output not found: %s", expected)).
		WithDetail("expected", expected)
}

// SourceFileNotFound creates an error for an artifact that vanished between
// classification and processing.
func SourceFileNotFound(path string) *ScribeError {
	return New(ErrCodeSourceFileNotFound, fmt.Sprintf("source file not found: %s", path)).
		WithDetail("path", path)
}

// WebhookNotConfigured creates an error for a missing webhook endpoint
func WebhookNotConfigured() *ScribeError {
	return New(ErrCodeWebhookNotConfigured, "no webhook URL configured")
}

// WebhookFailed creates a webhook delivery failure error
func WebhookFailed(url string, err error) *ScribeError {
	return Wrap(err, ErrCodeWebhookFailed, "webhook delivery failed").
		WithDetail("url", url)
}
