package transcribe

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/grovetools/scribe/command"
	"github.com/grovetools/scribe/errors"
	"github.com/sirupsen/logrus"
)

// EngineCommand is the external speech-to-text engine invoked for
// transcription.
const EngineCommand = "transcribe-anything"

// OutputFileName is the fixed-name artifact the engine writes into its
// output directory.
const OutputFileName = "out.txt"

// Transcriber runs a local speech-recognition engine against normalized
// audio files.
type Transcriber struct {
	builder *command.SafeBuilder
	timeout time.Duration

	// Model and Device are opaque selectors passed through to the engine
	// after shell-safety validation.
	model  string
	device string

	log *logrus.Entry
}

// NewTranscriber creates a Transcriber for the given engine configuration.
func NewTranscriber(executor command.Executor, model, device string, log *logrus.Entry) *Transcriber {
	return &Transcriber{
		builder: command.NewSafeBuilderWithExecutor(executor),
		timeout: command.MaxTimeout,
		model:   model,
		device:  device,
		log:     log,
	}
}

// Transcribe runs the engine on audioPath and returns the transcript text
// byte-for-byte from the engine's output file. An engine failure and a
// clean engine run that never wrote its output artifact are distinct
// errors; callers report both through the same status channel but log them
// differently.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", errors.SourceFileNotFound(audioPath)
	}
	if err := t.builder.Validate("mediaPath", audioPath); err != nil {
		return "", errors.New(errors.ErrCodeInvalidInput, err.Error())
	}
	if err := t.builder.Validate("modelName", t.model); err != nil {
		return "", errors.New(errors.ErrCodeInvalidInput, err.Error())
	}
	if err := t.builder.Validate("device", t.device); err != nil {
		return "", errors.New(errors.ErrCodeInvalidInput, err.Error())
	}

	outputDir, err := os.MkdirTemp("", "scribe-transcribe-")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to create output directory")
	}
	defer os.RemoveAll(outputDir)

	t.log.WithFields(logrus.Fields{
		"audio":  audioPath,
		"model":  t.model,
		"device": t.device,
		"output": outputDir,
	}).Debug("Starting transcription")

	cmd, err := t.builder.Build(ctx, EngineCommand,
		audioPath,
		"--output_dir", outputDir,
		"--task", "transcribe",
		"--model", t.model,
		"--device", t.device,
	)
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidInput, err.Error())
	}
	if _, stderr, err := cmd.WithTimeout(t.timeout).Run(); err != nil {
		t.log.WithError(err).WithField("stderr", stderr).Error("Transcription engine failed")
		if errors.Is(err, errors.ErrCodeCommandTimeout) || errors.Is(err, errors.ErrCodeCommandNotFound) {
			return "", err
		}
		return "", errors.TranscribeFailed(audioPath, err)
	}

	outputPath := filepath.Join(outputDir, OutputFileName)
	text, err := os.ReadFile(outputPath)
	if err != nil {
		// The engine returned cleanly but never wrote its artifact.
		t.log.WithField("expected", outputPath).Error("Transcription output not found")
		return "", errors.TranscribeNoOutput(outputPath)
	}

	t.log.WithField("bytes", len(text)).Debug("Transcription completed")
	return string(text), nil
}
