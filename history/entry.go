package history

import (
	"strings"
	"time"
)

// UploadEvent is one parsed entry from the capture tool's upload history.
// Events are never mutated after parsing; every poll re-parses the file.
type UploadEvent struct {
	// FilePath is the absolute path recorded by the capture tool.
	FilePath string

	// FileName is the base name, used for extension classification.
	FileName string

	// Timestamp is the entry time normalized to UTC. Entries without a zone
	// offset are assumed UTC.
	Timestamp time.Time

	// URL optionally references where the artifact was uploaded remotely.
	// Pass-through only.
	URL string
}

// rawEntry mirrors the capture tool's on-disk JSON keys.
type rawEntry struct {
	FilePath string `json:"FilePath"`
	FileName string `json:"FileName"`
	DateTime string `json:"DateTime"`
	URL      string `json:"URL"`
}

// timestampLayouts are tried in order after offset normalization. The
// zone-less layouts are interpreted as UTC.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp parses the capture tool's DateTime values. A trailing "Z"
// is rewritten to an explicit "+00:00" offset first; values with no offset
// at all are treated as UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		if strings.Contains(layout, "-07:00") {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			} else {
				lastErr = err
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}
