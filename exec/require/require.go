package require

import (
	"github.com/jcchavezs/fakecc/exec"
	"github.com/stretchr/testify/require"
)

type tHelper = interface {
	Helper()
}

// ArgEqual asserts that the argument at position i in args is equal to expected.
func ArgEqual(t require.TestingT, expected any, args []string, i int, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	require.Greater(t, len(args), i, "not enough arguments to compare")
	require.Equal(t, expected, args[i], msgAndArgs...)
}

// Succeeded asserts that the command exited with zero and printed exactly
// stdout. Stderr is included in the failure message.
func Succeeded(t require.TestingT, stdout string, res exec.Result, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	require.Equal(t, 0, res.ExitCode(), "unexpected exit code, stderr: %s", res.Stderr())
	require.Equal(t, stdout, res.Stdout(), msgAndArgs...)
}

// Failed asserts that the command exited with a non zero code, printed nothing
// on stdout and explained itself on stderr.
func Failed(t require.TestingT, res exec.Result, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	require.NotEqual(t, 0, res.ExitCode(), msgAndArgs...)
	require.Empty(t, res.Stdout(), msgAndArgs...)
	require.NotEmpty(t, res.Stderr(), msgAndArgs...)
}
