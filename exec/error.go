package exec

import "errors"

type execErr struct {
	msg      string
	stderr   string
	exitCode int
}

func (e execErr) Error() string {
	return e.msg
}

func (e execErr) Stderr() string {
	return e.stderr
}

func (e execErr) ExitCode() int {
	return e.exitCode
}

// NewExecErr returns an ExecErr for a command that exited with exitCode, or nil
// when exitCode is zero.
func NewExecErr(message string, stderr string, exitCode int) error {
	if exitCode == 0 {
		return nil
	}

	return execErr{message, stderr, exitCode}
}

type ExecErr interface {
	Error() string
	Stderr() string
	ExitCode() int
}

// GetStderr returns the stderr of the failed command wrapped in err, if any.
func GetStderr(err error) (string, bool) {
	var eErr ExecErr
	if err == nil || !errors.As(err, &eErr) {
		return "", false
	}

	return eErr.Stderr(), true
}

// GetExitCode returns the exit code of the failed command wrapped in err, if any.
func GetExitCode(err error) (int, bool) {
	var eErr ExecErr
	if err == nil || !errors.As(err, &eErr) {
		return 0, false
	}

	return eErr.ExitCode(), true
}
