package errors

import (
	"fmt"
	"testing"
)

func TestScribeError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeHistoryNotFound, "history not found")
	if err.Code != ErrCodeHistoryNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeHistoryNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeCommandFailed, "command failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeCommandFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeHistoryNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("path", "/tmp/History.json").WithDetail("attempt", 2)
	if detailed.Details["path"] != "/tmp/History.json" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test HistoryNotFound
	err := HistoryNotFound("/tmp/History.json")
	if err.Code != ErrCodeHistoryNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeHistoryNotFound, err.Code)
	}
	if err.Details["path"] != "/tmp/History.json" {
		t.Error("HistoryNotFound should include path detail")
	}

	// Test ExtractFailed carries the tool's stderr
	cause := fmt.Errorf("exit status 1")
	err = ExtractFailed("/tmp/clip.mp4", "Invalid data found", cause)
	if err.Code != ErrCodeExtractFailed {
		t.Errorf("expected code %s, got %s", ErrCodeExtractFailed, err.Code)
	}
	if err.Details["stderr"] != "Invalid data found" {
		t.Error("ExtractFailed should include stderr detail")
	}
	if err.Unwrap() != cause {
		t.Error("ExtractFailed should wrap the cause")
	}

	// Test TranscribeNoOutput is distinct from TranscribeFailed
	err = TranscribeNoOutput("/tmp/out/out.txt")
	if err.Code != ErrCodeTranscribeNoOutput {
		t.Errorf("expected code %s, got %s", ErrCodeTranscribeNoOutput, err.Code)
	}
	if Is(err, ErrCodeTranscribeFailed) {
		t.Error("missing output should not match engine failure code")
	}

	// Test WebhookNotConfigured
	err = WebhookNotConfigured()
	if err.Code != ErrCodeWebhookNotConfigured {
		t.Errorf("expected code %s, got %s", ErrCodeWebhookNotConfigured, err.Code)
	}
}

func TestGetCode(t *testing.T) {
	err := ConfigInvalid("bad timeout")
	if GetCode(err) != ErrCodeConfigInvalid {
		t.Errorf("expected %s, got %s", ErrCodeConfigInvalid, GetCode(err))
	}

	// Wrapped in a plain fmt error, GetCode should still find the code
	outer := fmt.Errorf("loading config: %w", err)
	if GetCode(outer) != ErrCodeConfigInvalid {
		t.Error("GetCode should unwrap plain wrapped errors")
	}

	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}
}
