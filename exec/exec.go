package exec

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alexellis/go-execute/v2"
	"github.com/spf13/afero"
)

// Execer runs external commands, e.g. the installed g++ fixture.
type Execer interface {
	// Run executes a command and returns its result even if the exit code is non zero.
	Run(ctx context.Context, command string, args ...string) (Result, error)
	// RunX executes a command and returns its stdout. It returns an ExecErr if the
	// exit code is non zero.
	RunX(ctx context.Context, command string, args ...string) (string, error)
	RunWithStdin(ctx context.Context, stdin io.Reader, command string, args ...string) (Result, error)
	RunWithStdinX(ctx context.Context, stdin io.Reader, command string, args ...string) (string, error)
	Log(ctx context.Context, level slog.Level, msg string, fields ...any)
	// WithEnv returns an Execer that adds the KEY=value pairs on top of the
	// current environment.
	WithEnv(kv ...string) Execer
	WithLogFields(fields ...any) Execer
	// FS returns a filesystem rooted at the working dir.
	FS() afero.Fs
}

type execer struct {
	dir          string
	printCommand bool
	env          []string
	logger       *slog.Logger
}

var _ Execer = execer{}

// NewExecer returns an Execer using dir as working dir. An empty dir means the
// current working dir.
func NewExecer(dir string, printCommand bool) Execer {
	return execer{dir: dir, printCommand: printCommand, logger: slog.Default()}
}

// NewExecerWithLogger is like NewExecer but logs through logger.
func NewExecerWithLogger(dir string, printCommand bool, logger *slog.Logger) Execer {
	if logger == nil {
		logger = slog.Default()
	}
	return execer{dir: dir, printCommand: printCommand, logger: logger}
}

func (e execer) Run(ctx context.Context, command string, args ...string) (Result, error) {
	return e.RunWithStdin(ctx, nil, command, args...)
}

func (e execer) RunX(ctx context.Context, command string, args ...string) (string, error) {
	return e.RunWithStdinX(ctx, nil, command, args...)
}

func (e execer) RunWithStdin(ctx context.Context, stdin io.Reader, command string, args ...string) (Result, error) {
	task := execute.ExecTask{
		Command:      command,
		Args:         args,
		Cwd:          e.dir,
		Env:          e.env,
		PrintCommand: e.printCommand,
		Stdin:        stdin,
	}

	e.Log(ctx, slog.LevelDebug, "running command", "cmd", cmdString(command, args...), "dir", e.dir)

	execRes, err := task.Execute(ctx)
	if err != nil {
		return result{}, fmt.Errorf("%s: %v", cmdString(command, args...), err)
	}

	if execRes.ExitCode != 0 {
		e.Log(ctx, slog.LevelDebug, "command exited with non zero code", "cmd", command, "exit_code", execRes.ExitCode)
	}

	return result{execRes}, nil
}

func (e execer) RunWithStdinX(ctx context.Context, stdin io.Reader, command string, args ...string) (string, error) {
	res, err := e.RunWithStdin(ctx, stdin, command, args...)
	if err != nil {
		return "", err
	}

	if res.ExitCode() != 0 {
		return res.Stdout(), NewExecErr(
			fmt.Sprintf("%s: exit code %d", cmdString(command, args...), res.ExitCode()),
			res.Stderr(), res.ExitCode(),
		)
	}

	return res.Stdout(), nil
}

func (e execer) Log(ctx context.Context, level slog.Level, msg string, fields ...any) {
	e.logger.Log(ctx, level, msg, fields...)
}

func (e execer) WithEnv(kv ...string) Execer {
	env := make([]string, 0, len(e.env)+len(kv))
	env = append(env, e.env...)
	e.env = append(env, kv...)
	return e
}

func (e execer) WithLogFields(fields ...any) Execer {
	e.logger = e.logger.With(fields...)
	return e
}

func (e execer) FS() afero.Fs {
	if e.dir == "" {
		return afero.NewOsFs()
	}
	return afero.NewBasePathFs(afero.NewOsFs(), e.dir)
}

func cmdString(command string, args ...string) string {
	return strings.Join(append([]string{command}, args...), " ")
}

// Result holds the result from a command run
type Result interface {
	Stdout() string
	TrimStdout() string
	Stderr() string
	ExitCode() int
	Cancelled() bool
}

type result struct {
	execute.ExecResult
}

func (r result) Stdout() string {
	return r.ExecResult.Stdout
}

// TrimStdout returns the content of stdout removing the trailing new lines.
func (r result) TrimStdout() string {
	return strings.TrimSpace(r.ExecResult.Stdout)
}

func (r result) Stderr() string {
	return r.ExecResult.Stderr
}

func (r result) ExitCode() int {
	return r.ExecResult.ExitCode
}

func (r result) Cancelled() bool {
	return r.ExecResult.Cancelled
}
