package mock

import (
	"context"
	"io"
	"log/slog"
	"strings"

	fakeccexec "github.com/jcchavezs/fakecc/exec"
	"github.com/spf13/afero"
)

// Execer is an exec.Execer backed by functions. Unset functions panic when called.
type Execer struct {
	RunFn           func(ctx context.Context, command string, args ...string) (fakeccexec.Result, error)
	RunXFn          func(ctx context.Context, command string, args ...string) (string, error)
	RunWithStdinFn  func(ctx context.Context, stdin io.Reader, command string, args ...string) (fakeccexec.Result, error)
	RunWithStdinXFn func(ctx context.Context, stdin io.Reader, command string, args ...string) (string, error)
	Logger          *slog.Logger

	WithEnvFn       func(kv ...string) fakeccexec.Execer
	WithLogFieldsFn func(fields ...any) fakeccexec.Execer
	FSFn            func() afero.Fs
}

var _ fakeccexec.Execer = Execer{}

func (x Execer) Run(ctx context.Context, command string, args ...string) (fakeccexec.Result, error) {
	return x.RunFn(ctx, command, args...)
}

func (x Execer) RunX(ctx context.Context, command string, args ...string) (string, error) {
	return x.RunXFn(ctx, command, args...)
}

func (x Execer) RunWithStdin(ctx context.Context, stdin io.Reader, command string, args ...string) (fakeccexec.Result, error) {
	return x.RunWithStdinFn(ctx, stdin, command, args...)
}

func (x Execer) RunWithStdinX(ctx context.Context, stdin io.Reader, command string, args ...string) (string, error) {
	return x.RunWithStdinXFn(ctx, stdin, command, args...)
}

func (x Execer) Log(ctx context.Context, level slog.Level, msg string, fields ...any) {
	if x.Logger != nil {
		x.Logger.Log(ctx, level, msg, fields...)
	}
}

func (x Execer) WithEnv(kv ...string) fakeccexec.Execer {
	return x.WithEnvFn(kv...)
}

func (x Execer) WithLogFields(fields ...any) fakeccexec.Execer {
	if x.WithLogFieldsFn == nil {
		return x
	}
	return x.WithLogFieldsFn(fields...)
}

func (x Execer) FS() afero.Fs {
	return x.FSFn()
}

// Result is a fixed exec.Result.
type Result struct {
	StdoutValue string
	StderrValue string
	Code        int
}

var _ fakeccexec.Result = Result{}

func (r Result) Stdout() string { return r.StdoutValue }
func (r Result) TrimStdout() string { return strings.TrimSpace(r.StdoutValue) }
func (r Result) Stderr() string { return r.StderrValue }
func (r Result) ExitCode() int { return r.Code }
func (r Result) Cancelled() bool { return false }
