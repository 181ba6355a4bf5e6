package command

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/grovetools/scribe/errors"
)

const (
	// DefaultTimeout is the default command execution timeout. Transcription
	// of a long recording is slow, so this is deliberately generous.
	DefaultTimeout = 10 * time.Minute

	// MaxTimeout is the maximum allowed timeout
	MaxTimeout = 60 * time.Minute
)

// SafeBuilder provides secure command execution with validation
type SafeBuilder struct {
	defaultTimeout time.Duration
	validators     map[string]func(string) error
	executor       Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		validators:     makeDefaultValidators(),
		executor:       exec,
	}
}

// makeDefaultValidators returns the default set of validators
func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"mediaPath": validateMediaPath,
		"modelName": validateModelName,
		"device":    validateDevice,
	}
}

// validateMediaPath ensures file paths handed to external tools are safe
func validateMediaPath(path string) error {
	if path == "" {
		return fmt.Errorf("media path cannot be empty")
	}

	// Prevent directory traversal
	if strings.Contains(path, "..") {
		return fmt.Errorf("media path cannot contain '..'")
	}

	// Prevent command injection via shell metacharacters
	if strings.ContainsAny(path, ";|&$`") {
		return fmt.Errorf("media path contains invalid characters")
	}

	return nil
}

// validateModelName ensures speech engine model selectors are plain tokens.
// The value itself is opaque; only its shape is checked.
func validateModelName(name string) error {
	if name == "" {
		return fmt.Errorf("model name cannot be empty")
	}

	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid model name: %s", name)
	}

	return nil
}

// validateDevice ensures compute device selectors are plain tokens
func validateDevice(device string) error {
	if device == "" {
		return fmt.Errorf("device cannot be empty")
	}

	validDevice := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9:_-]*$`)
	if !validDevice.MatchString(device) {
		return fmt.Errorf("invalid device: %s", device)
	}

	return nil
}

// Command represents a safe command configuration
type Command struct {
	ctx      context.Context
	name     string
	args     []string
	timeout  time.Duration
	executor Executor
}

// Build creates a new command with validation. The timeout is applied when
// the command runs, derived from ctx.
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	// Validate command name
	if name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	return &Command{
		ctx:      ctx,
		name:     name,
		args:     args,
		timeout:  sb.defaultTimeout,
		executor: sb.executor,
	}, nil
}

// WithTimeout sets a custom timeout for the command
func (c *Command) WithTimeout(timeout time.Duration) *Command {
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}

	c.timeout = timeout
	return c
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// Exec creates and returns an exec.Cmd bound to the build context. Callers
// that want deadline enforcement and coded errors use Run instead.
func (c *Command) Exec() *exec.Cmd {
	return c.executor.CommandContext(c.ctx, c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
}

// Run executes the command under its timeout, capturing stdout and stderr,
// and maps execution failures to coded errors. The captured stderr is
// returned even on failure.
func (c *Command) Run() (stdout string, stderr string, err error) {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	cmd := c.executor.CommandContext(ctx, c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
	stdout, stderr, err = RunCapture(cmd)
	if err == nil {
		return stdout, stderr, nil
	}

	switch {
	case ctx.Err() == context.DeadlineExceeded:
		return stdout, stderr, errors.CommandTimeout(c.name, c.timeout.String())
	case stderrors.Is(err, exec.ErrNotFound):
		return stdout, stderr, errors.CommandNotFound(c.name)
	default:
		return stdout, stderr, errors.CommandFailed(c.name, err)
	}
}
