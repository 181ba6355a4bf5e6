package audio

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/grovetools/scribe/errors"
	"github.com/grovetools/scribe/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "test")
}

func TestExtractSuccess(t *testing.T) {
	executor := testutil.FakeTranscoder()
	extractor := NewExtractor(executor, t.TempDir(), testLogger())

	out, err := extractor.Extract(context.Background(), "/media/clip.mp4")
	require.NoError(t, err)
	defer os.Remove(out)

	// Output file exists and is unique per call
	_, statErr := os.Stat(out)
	assert.NoError(t, statErr)

	out2, err := extractor.Extract(context.Background(), "/media/clip.mp4")
	require.NoError(t, err)
	defer os.Remove(out2)
	assert.NotEqual(t, out, out2, "each extraction gets a fresh output path")
}

func TestExtractPassesNormalizationFlags(t *testing.T) {
	executor := testutil.FakeTranscoder()
	extractor := NewExtractor(executor, t.TempDir(), testLogger())

	out, err := extractor.Extract(context.Background(), "/media/clip.mp4")
	require.NoError(t, err)
	defer os.Remove(out)

	calls := executor.Calls()
	require.Len(t, calls, 1)
	args := calls[0]
	assert.Equal(t, "ffmpeg", args[0])
	assert.Contains(t, args, "-vn")
	assert.Contains(t, args, "pcm_s16le")
	assert.Contains(t, args, "16000")
	assert.Contains(t, args, "/media/clip.mp4")
	assert.Equal(t, out, args[len(args)-1])
}

func TestExtractToolFailureCarriesStderr(t *testing.T) {
	executor := testutil.FakeTranscoderFailure("Invalid data found when processing input")
	extractor := NewExtractor(executor, t.TempDir(), testLogger())

	_, err := extractor.Extract(context.Background(), "/media/broken.mp4")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeExtractFailed, errors.GetCode(err))

	scribeErr := err.(*errors.ScribeError)
	assert.Equal(t, "Invalid data found when processing input", scribeErr.Details["stderr"])
}

func TestExtractHungTranscoderTimesOut(t *testing.T) {
	executor := &testutil.ScriptExecutor{Script: `sleep 10`}
	extractor := NewExtractor(executor, t.TempDir(), testLogger())
	extractor.timeout = 50 * time.Millisecond

	_, err := extractor.Extract(context.Background(), "/media/clip.mp4")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCommandTimeout, errors.GetCode(err))
}

func TestExtractRejectsUnsafePath(t *testing.T) {
	executor := testutil.FakeTranscoder()
	extractor := NewExtractor(executor, t.TempDir(), testLogger())

	_, err := extractor.Extract(context.Background(), "../../etc/passwd.mp4")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
	assert.Empty(t, executor.Calls(), "the transcoder is never invoked for a rejected path")
}

func TestExtractExitZeroWithoutOutputFails(t *testing.T) {
	// Exit code 0 is not trusted alone: the output file must exist.
	executor := &testutil.ScriptExecutor{Script: `exit 0`}
	extractor := NewExtractor(executor, t.TempDir(), testLogger())

	_, err := extractor.Extract(context.Background(), "/media/clip.mp4")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeExtractNoOutput, errors.GetCode(err))
}
