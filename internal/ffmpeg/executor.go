package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one ffmpeg invocation and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// Logger is the subset of the logger used for command tracing.
type Logger interface {
	Debug(string, ...interface{})
}

// Exec runs a real ffmpeg binary.
type Exec struct {
	Path string
	Log  Logger
}

// NewExec returns a runner for the binary at path, which may be a bare
// command name resolved through PATH.
func NewExec(path string, log Logger) *Exec {
	return &Exec{Path: path, Log: log}
}

// Lookup resolves the binary. It returns [ErrNotFound] when it does not
// exist or is not executable.
func (e *Exec) Lookup() (string, error) {
	p, err := exec.LookPath(e.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, e.Path)
	}
	return p, nil
}

// Run executes ffmpeg with args. stderr is captured and returned inside an
// [*ExitError] when the process fails.
func (e *Exec) Run(ctx context.Context, args ...string) ([]byte, error) {
	bin, err := e.Lookup()
	if err != nil {
		return nil, err
	}
	if e.Log != nil {
		e.Log.Debug("exec: %s %s", bin, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return nil, &ExitError{Args: args, Code: code, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

// Version returns the first line of "ffmpeg -version".
func Version(ctx context.Context, r Runner) (string, error) {
	out, err := r.Run(ctx, "-hide_banner", "-version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}
