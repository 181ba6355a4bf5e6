package history

import (
	"encoding/json"
	"os"

	"github.com/grovetools/scribe/errors"
	"github.com/sirupsen/logrus"
)

// Parse decodes the raw bytes of a history file into UploadEvents in file
// order (append order, oldest first). Entries missing FilePath, FileName or
// DateTime, and entries whose timestamp does not parse, are skipped rather
// than failing the whole read.
func Parse(data []byte) ([]UploadEvent, error) {
	repaired, err := Repair(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeHistoryParse, "history repair failed")
	}

	var raw []rawEntry
	if err := json.Unmarshal(repaired, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeHistoryParse, "history parse failed")
	}

	events := make([]UploadEvent, 0, len(raw))
	for _, r := range raw {
		if r.FilePath == "" || r.FileName == "" || r.DateTime == "" {
			continue
		}
		ts, err := parseTimestamp(r.DateTime)
		if err != nil {
			continue
		}
		events = append(events, UploadEvent{
			FilePath:  r.FilePath,
			FileName:  r.FileName,
			Timestamp: ts,
			URL:       r.URL,
		})
	}
	return events, nil
}

// Reader reads the capture tool's history file. The file is externally
// owned and may grow, or be mid-write, between polls.
type Reader struct {
	path string
	log  *logrus.Entry
}

// NewReader creates a Reader for the given history file path.
func NewReader(path string, log *logrus.Entry) *Reader {
	return &Reader{path: path, log: log}
}

// Path returns the history file path.
func (r *Reader) Path() string {
	return r.path
}

// Read parses the full history file. A read or parse failure is transient
// by contract, the file may be locked or mid-write, so it is logged and
// an empty sequence returned; the caller simply retries on its next poll.
func (r *Reader) Read() []UploadEvent {
	data, err := os.ReadFile(r.path)
	if err != nil {
		r.log.WithError(err).WithField("path", r.path).Warn("Failed to read history file")
		return nil
	}

	events, err := Parse(data)
	if err != nil {
		r.log.WithError(err).WithField("path", r.path).Warn("Failed to parse history file")
		return nil
	}
	return events
}
