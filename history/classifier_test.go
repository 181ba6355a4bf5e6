package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(name string, ts time.Time) UploadEvent {
	return UploadEvent{
		FilePath:  `C:\x\` + name,
		FileName:  name,
		Timestamp: ts,
	}
}

func TestIsMedia(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"clip.mp4", true},
		{"CLIP.MP4", true},
		{"song.Mp3", true},
		{"audio.m4a", true},
		{"recording.webm", true},
		{"screenshot.png", false},
		{"notes.txt", false},
		{"mp4", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMedia(tt.name), "IsMedia(%q)", tt.name)
	}
}

func TestFindNewestPrefersNewestMedia(t *testing.T) {
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []UploadEvent{
		event("old.mp4", ref.Add(-time.Minute)),
		event("first.mp4", ref.Add(1*time.Second)),
		event("second.mp4", ref.Add(2*time.Second)),
	}

	got := FindNewest(context.Background(), events, ref)
	require.NotNil(t, got)
	assert.Equal(t, "second.mp4", got.FileName, "most recent qualifying artifact wins")
}

// A non-media entry newer than the reference must be skipped, not treated as
// a terminal condition.
func TestFindNewestSkipsNonMedia(t *testing.T) {
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []UploadEvent{
		event("a.txt", ref.Add(1*time.Second)),
		event("b.mp4", ref.Add(2*time.Second)),
		event("c.png", ref.Add(3*time.Second)),
	}

	got := FindNewest(context.Background(), events, ref)
	require.NotNil(t, got)
	assert.Equal(t, "b.mp4", got.FileName)
}

func TestFindNewestStopsAtReference(t *testing.T) {
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []UploadEvent{
		// Media, but at/before the reference: never selected.
		event("exact.mp4", ref),
		event("older.mp4", ref.Add(-time.Hour)),
	}

	assert.Nil(t, FindNewest(context.Background(), events, ref))
}

func TestFindNewestEmptyAndNoMatch(t *testing.T) {
	ref := time.Now().UTC()
	assert.Nil(t, FindNewest(context.Background(), nil, ref))

	events := []UploadEvent{event("shot.png", ref.Add(time.Second))}
	assert.Nil(t, FindNewest(context.Background(), events, ref))
}

func TestFindNewestCancelled(t *testing.T) {
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []UploadEvent{event("a.mp4", ref.Add(time.Second))}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, FindNewest(ctx, events, ref))
}

// The scenario from the monitoring contract: a text file and an mp4 both
// newer than the reference; the mp4 is selected.
func TestFindNewestScenario(t *testing.T) {
	data := []byte(`{"FilePath":"C:\\x\\a.txt","FileName":"a.txt","DateTime":"2024-01-01T00:00:01Z"}` +
		`{"FilePath":"C:\\x\\b.mp4","FileName":"b.mp4","DateTime":"2024-01-01T00:00:02Z"}`)

	events, err := Parse(data)
	require.NoError(t, err)

	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := FindNewest(context.Background(), events, ref)
	require.NotNil(t, got)
	assert.Equal(t, "b.mp4", got.FileName)
	assert.Equal(t, `C:\x\b.mp4`, got.FilePath)
}

func TestRecentMedia(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []UploadEvent{
		event("ancient.mp4", base.Add(-48*time.Hour)),
		event("one.mp4", base.Add(1*time.Minute)),
		event("shot.png", base.Add(2*time.Minute)),
		event("two.wav", base.Add(3*time.Minute)),
		event("three.mov", base.Add(4*time.Minute)),
	}

	got := RecentMedia(events, base, 0)
	require.Len(t, got, 3)
	// Newest first
	assert.Equal(t, "three.mov", got[0].FileName)
	assert.Equal(t, "two.wav", got[1].FileName)
	assert.Equal(t, "one.mp4", got[2].FileName)

	limited := RecentMedia(events, base, 2)
	require.Len(t, limited, 2)
	assert.Equal(t, "three.mov", limited[0].FileName)
}
