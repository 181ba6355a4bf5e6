package history

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

// MediaExtensions is the fixed allow-list of audio/video extensions the
// pipeline will process. Matching is case-insensitive.
var MediaExtensions = []string{
	".mp3", ".mp4", ".wav", ".m4a", ".flac",
	".ogg", ".webm", ".avi", ".mov", ".wmv",
}

// IsMedia reports whether the file name carries a recognized audio/video
// extension.
func IsMedia(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range MediaExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// FindNewest scans events newest-first (events are in append order, so from
// the end) and returns the first media event strictly after the reference
// time. Non-media entries newer than the reference are skipped (the capture
// tool interleaves screenshots with recordings) and the scan stops at the
// first entry at or before the reference. Returns nil when nothing
// qualifies, or when ctx is cancelled mid-scan.
func FindNewest(ctx context.Context, events []UploadEvent, after time.Time) *UploadEvent {
	for i := len(events) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			return nil
		}
		e := events[i]
		if !e.Timestamp.After(after) {
			return nil
		}
		if IsMedia(e.FileName) {
			return &e
		}
	}
	return nil
}

// RecentMedia returns up to limit media events newer than since, newest
// first. Used for the history listing surface, not the monitoring loop.
func RecentMedia(events []UploadEvent, since time.Time, limit int) []UploadEvent {
	var out []UploadEvent
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if !e.Timestamp.After(since) {
			continue
		}
		if !IsMedia(e.FileName) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
