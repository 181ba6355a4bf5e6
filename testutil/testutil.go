package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// HistoryEntry is a single upload-history record in the capture tool's
// on-disk shape.
type HistoryEntry struct {
	FilePath string
	FileName string
	DateTime time.Time
	URL      string
}

// WriteHistory writes entries to path in the capture tool's concatenated
// JSON format (objects back to back, newline between them, no array
// wrapper).
func WriteHistory(t *testing.T, path string, entries ...HistoryEntry) {
	t.Helper()

	var buf []byte
	for _, e := range entries {
		obj := map[string]string{
			"FilePath": e.FilePath,
			"FileName": e.FileName,
			"DateTime": e.DateTime.UTC().Format("2006-01-02T15:04:05Z"),
		}
		if e.URL != "" {
			obj["URL"] = e.URL
		}
		data, err := json.Marshal(obj)
		require.NoError(t, err)
		buf = append(buf, data...)
		buf = append(buf, '\n')
	}
	require.NoError(t, os.WriteFile(path, buf, 0644))
}

// TempHistory creates a history file in a temp dir and returns its path.
func TempHistory(t *testing.T, entries ...HistoryEntry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "History.json")
	WriteHistory(t, path, entries...)
	return path
}

// MediaEntry builds a history entry for a media file living in dir. The
// file itself is created so existence checks pass.
func MediaEntry(t *testing.T, dir, name string, at time.Time) HistoryEntry {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("fake media"), 0644))
	return HistoryEntry{FilePath: path, FileName: name, DateTime: at}
}

// ScriptExecutor is a command.Executor that substitutes a shell script for
// every command it is asked to build. Inside the script $0 is the original
// command name and $1.. are its arguments. Calls are recorded for
// assertions.
type ScriptExecutor struct {
	Script string

	mu    sync.Mutex
	calls [][]string
}

// Command builds a sh invocation running the configured script.
func (e *ScriptExecutor) Command(name string, args ...string) *exec.Cmd {
	return e.CommandContext(context.Background(), name, args...)
}

// CommandContext builds a context-aware sh invocation running the script.
func (e *ScriptExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	e.mu.Lock()
	e.calls = append(e.calls, append([]string{name}, args...))
	e.mu.Unlock()

	shArgs := append([]string{"-c", e.Script, name}, args...)
	return exec.CommandContext(ctx, "sh", shArgs...)
}

// Calls returns the recorded command invocations, each as name followed by
// its arguments.
func (e *ScriptExecutor) Calls() [][]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([][]string, len(e.calls))
	copy(out, e.calls)
	return out
}

// FakeTranscoder returns an executor whose script touches its final
// argument, mimicking a transcoder that writes its output file and exits 0.
func FakeTranscoder() *ScriptExecutor {
	return &ScriptExecutor{Script: `for a; do out=$a; done; printf 'RIFF' > "$out"`}
}

// FakeTranscoderFailure returns an executor that writes diagnostic text to
// stderr and exits non-zero, producing no output file.
func FakeTranscoderFailure(diagnostic string) *ScriptExecutor {
	return &ScriptExecutor{Script: fmt.Sprintf(`echo %q 1>&2; exit 1`, diagnostic)}
}

// FakeSpeechEngine returns an executor that finds the --output_dir flag in
// its arguments and writes the given transcript to out.txt inside it.
func FakeSpeechEngine(transcript string) *ScriptExecutor {
	script := fmt.Sprintf(`
dir=""
prev=""
for a; do
  if [ "$prev" = "--output_dir" ]; then dir=$a; fi
  prev=$a
done
[ -n "$dir" ] || exit 1
mkdir -p "$dir"
printf '%%s' %q > "$dir/out.txt"
`, transcript)
	return &ScriptExecutor{Script: script}
}

// FakeSpeechEngineSilent returns an executor that exits 0 without ever
// writing an output artifact.
func FakeSpeechEngineSilent() *ScriptExecutor {
	return &ScriptExecutor{Script: `exit 0`}
}
