package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grovetools/scribe/command"
	"github.com/grovetools/scribe/errors"
	"github.com/sirupsen/logrus"
)

// ffmpegArgs produce a single-channel 16kHz 16-bit PCM WAV, the input
// format the speech engine expects.
func ffmpegArgs(input, output string) []string {
	return []string{
		"-y",
		"-i", input,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		output,
	}
}

// Extractor converts arbitrary media files into normalized WAV audio by
// invoking an external transcoder.
type Extractor struct {
	builder *command.SafeBuilder
	timeout time.Duration
	tempDir string
	log     *logrus.Entry
}

// NewExtractor creates an Extractor using the given executor. An empty
// tempDir means the system temp directory.
func NewExtractor(executor command.Executor, tempDir string, log *logrus.Entry) *Extractor {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Extractor{
		builder: command.NewSafeBuilderWithExecutor(executor),
		timeout: command.DefaultTimeout,
		tempDir: tempDir,
		log:     log,
	}
}

// Extract demuxes inputPath into a fresh temporary WAV file and returns its
// path. Ownership of the file's cleanup passes to the caller. A non-zero
// exit from the transcoder surfaces the tool's own stderr; a zero exit
// without an output file on disk is still a failure.
func (e *Extractor) Extract(ctx context.Context, inputPath string) (string, error) {
	if err := e.builder.Validate("mediaPath", inputPath); err != nil {
		return "", errors.New(errors.ErrCodeInvalidInput, err.Error())
	}

	outputPath := filepath.Join(e.tempDir, fmt.Sprintf("scribe-%s.wav", uuid.NewString()))

	e.log.WithFields(logrus.Fields{
		"input":  inputPath,
		"output": outputPath,
	}).Debug("Starting audio extraction")

	cmd, err := e.builder.Build(ctx, "ffmpeg", ffmpegArgs(inputPath, outputPath)...)
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidInput, err.Error())
	}
	_, stderr, err := cmd.WithTimeout(e.timeout).Run()
	if err != nil {
		// Remove whatever partial output the transcoder left behind.
		_ = os.Remove(outputPath)
		if errors.Is(err, errors.ErrCodeCommandTimeout) || errors.Is(err, errors.ErrCodeCommandNotFound) {
			return "", err
		}
		return "", errors.ExtractFailed(inputPath, strings.TrimSpace(stderr), err)
	}

	// Exit code 0 alone is not trusted.
	if _, err := os.Stat(outputPath); err != nil {
		return "", errors.ExtractNoOutput(outputPath)
	}

	e.log.WithField("output", outputPath).Debug("Audio extracted")
	return outputPath, nil
}
